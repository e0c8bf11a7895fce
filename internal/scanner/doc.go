// Package scanner enumerates mod candidates from the managed directory and
// from externally registered paths, and classifies each as a content package
// or a native module. Classification failures become per-entry warnings, not
// errors: the candidate is kept, flagged invalid, so the user can correct it.
package scanner
