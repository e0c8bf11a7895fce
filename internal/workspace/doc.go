// Package workspace manages the application's on-disk layout: the ~/.moddeck
// home directory holding the app config and the persisted mod registry, and
// the managed mods directory scanned for content. It handles path resolution
// and first-run initialization.
package workspace
