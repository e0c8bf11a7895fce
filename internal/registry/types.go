package registry

import (
	"path"
	"path/filepath"
	"strings"
)

// Kind discriminates the two entry variants.
type Kind string

const (
	KindPackage Kind = "package"
	KindNative  Kind = "native"
)

// Dependency is a symbolic reference to another entry. Packages are referenced
// by id, natives by base filename (any directory prefix is ignored). Optional
// references to absent entries are dropped at resolution time.
type Dependency struct {
	ID       string `yaml:"id" toml:"id"`
	Optional bool   `yaml:"optional,omitempty" toml:"optional,omitempty"`
}

// Entry is the closed set of registry entry variants. The concrete types are
// *Package and *Native; consumers switch exhaustively on them.
type Entry interface {
	Kind() Kind
	// Key returns the canonical identity used for lookups and constraint
	// references: the id for packages, the lowercased base filename for
	// natives.
	Key() string
	// DisplayName returns the name shown to the user.
	DisplayName() string
	IsEnabled() bool
	IsValid() bool
	IsExternal() bool
	// Ordering returns the explicit load_after / load_before hints.
	Ordering() (after, before []Dependency)

	isEntry()
}

// Package is a directory-based mod containing loose game assets.
type Package struct {
	ID       string
	Source   string // directory path; relative to the managed dir unless external
	External bool
	Enabled  bool
	Comment  string

	LoadAfter  []Dependency
	LoadBefore []Dependency

	// Invalid marks an entry whose source could not be classified or has
	// disappeared. Invalid entries stay visible but are excluded from
	// ordering and serialization.
	Invalid       bool
	InvalidReason string
}

func (p *Package) Kind() Kind          { return KindPackage }
func (p *Package) Key() string         { return p.ID }
func (p *Package) DisplayName() string { return p.ID }
func (p *Package) IsEnabled() bool     { return p.Enabled }
func (p *Package) IsValid() bool       { return !p.Invalid }
func (p *Package) IsExternal() bool    { return p.External }
func (p *Package) Ordering() (after, before []Dependency) {
	return p.LoadAfter, p.LoadBefore
}
func (p *Package) isEntry() {}

// Native is a single loadable library mod. Path may carry a sub-path relative
// to the managed dir ("SomeMod/bin/mod.dll"), or be absolute for externals.
type Native struct {
	Path        string
	Optional    bool // missing file does not block generation
	Enabled     bool
	Initializer string // optional symbol invoked after load
	Finalizer   string // optional symbol invoked before unload
	Preload     bool   // exempts the module from the default after-packages rule
	External    bool
	Comment     string

	LoadAfter  []Dependency
	LoadBefore []Dependency

	Invalid       bool
	InvalidReason string
}

func (n *Native) Kind() Kind          { return KindNative }
func (n *Native) Key() string         { return NativeKey(n.Path) }
func (n *Native) DisplayName() string { return path.Base(filepath.ToSlash(n.Path)) }
func (n *Native) IsEnabled() bool     { return n.Enabled }
func (n *Native) IsValid() bool       { return !n.Invalid }
func (n *Native) IsExternal() bool    { return n.External }
func (n *Native) Ordering() (after, before []Dependency) {
	return n.LoadAfter, n.LoadBefore
}
func (n *Native) isEntry() {}

// NativeKey canonicalizes a native module reference to its identity key:
// the base filename, lowercased. Filesystems the loader targets are
// case-insensitive.
func NativeKey(ref string) string {
	return strings.ToLower(path.Base(filepath.ToSlash(ref)))
}
