// Package loader is the glue to the external mod-loading tool: locating its
// binary, probing its version, and building the launch command. Downloading
// or supervising the tool is out of scope; the engine only ever receives
// already-resolved file paths.
package loader
