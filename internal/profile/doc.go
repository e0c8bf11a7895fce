// Package profile renders a resolved load order into the loader's profile
// format: a TOML document with one [[packages]] or [[natives]] section per
// entry, where file position encodes the load order. Output is byte-stable
// for identical input, and files are published atomically so the loader
// never reads a half-written profile.
package profile
