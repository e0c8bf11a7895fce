package profile

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

// Version is the profile format version the loader expects.
const Version = "v1"

// SerializationError reports a failed serialization attempt: either an entry
// whose metadata cannot be represented, or an output path that cannot be
// written. Retrying is the caller's decision.
type SerializationError struct {
	Path string // output file, when the failure was I/O
	Key  string // entry key, when the failure was representability
	Err  error
}

func (e *SerializationError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("serializing entry %q: %v", e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("writing profile %s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Profile is the loader profile document. Slice order is load order; the
// format has no numeric ordering field.
type Profile struct {
	ProfileVersion string    `toml:"profileVersion"`
	Packages       []Package `toml:"packages,omitempty"`
	Natives        []Native  `toml:"natives,omitempty"`
}

// Package is one [[packages]] section.
type Package struct {
	ID         string                `toml:"id"`
	Source     string                `toml:"source"`
	Comment    string                `toml:"comment,omitempty"`
	LoadAfter  []registry.Dependency `toml:"load_after,omitempty,inline"`
	LoadBefore []registry.Dependency `toml:"load_before,omitempty,inline"`
}

// Native is one [[natives]] section.
type Native struct {
	Path        string                `toml:"path"`
	Optional    bool                  `toml:"optional,omitempty"`
	Initializer string                `toml:"initializer,omitempty"`
	Finalizer   string                `toml:"finalizer,omitempty"`
	LoadEarly   bool                  `toml:"load_early,omitempty"`
	Comment     string                `toml:"comment,omitempty"`
	LoadAfter   []registry.Dependency `toml:"load_after,omitempty,inline"`
	LoadBefore  []registry.Dependency `toml:"load_before,omitempty,inline"`
}

// Options locates the rendered paths. Sources of managed entries are written
// relative to the profile's directory, externals keep their absolute path.
type Options struct {
	ManagedDir string // the managed mods directory
	OutputDir  string // directory the profile will be written to
}

// Render builds the profile document from an already-resolved order. Ordering
// hints are re-emitted for the loader's own verification, pruned to the
// entries actually present. Section order within [[packages]] and [[natives]]
// follows the resolved order.
func Render(ordered []registry.Entry, opts Options) (*Profile, error) {
	present := make(map[string]bool, len(ordered))
	for _, e := range ordered {
		present[e.Key()] = true
	}

	p := &Profile{ProfileVersion: Version}
	for _, e := range ordered {
		if err := checkRepresentable(e); err != nil {
			return nil, err
		}

		switch v := e.(type) {
		case *registry.Package:
			p.Packages = append(p.Packages, Package{
				ID:         v.ID,
				Source:     renderPath(v.Source, v.External, opts),
				Comment:    v.Comment,
				LoadAfter:  pruneDeps(v.LoadAfter, present),
				LoadBefore: pruneDeps(v.LoadBefore, present),
			})
		case *registry.Native:
			p.Natives = append(p.Natives, Native{
				Path:        renderPath(v.Path, v.External, opts),
				Optional:    v.Optional,
				Initializer: v.Initializer,
				Finalizer:   v.Finalizer,
				LoadEarly:   v.Preload,
				Comment:     v.Comment,
				LoadAfter:   pruneDeps(v.LoadAfter, present),
				LoadBefore:  pruneDeps(v.LoadBefore, present),
			})
		}
	}
	return p, nil
}

// Encode serializes the document. Identical documents encode to identical
// bytes.
func Encode(p *Profile) ([]byte, error) {
	data, err := toml.Marshal(p)
	if err != nil {
		return nil, &SerializationError{Err: fmt.Errorf("encoding profile: %w", err)}
	}
	return data, nil
}

// renderPath rewrites a managed-relative source to be relative to the profile
// location; external paths pass through. Output is slash-separated either
// way, which the loader accepts on every platform.
func renderPath(src string, external bool, opts Options) string {
	if external {
		return filepath.ToSlash(src)
	}
	full := filepath.Join(opts.ManagedDir, src)
	rel, err := filepath.Rel(opts.OutputDir, full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}

// pruneDeps drops hints referencing entries not present in the rendered set,
// so the loader never sees a dangling required reference.
func pruneDeps(deps []registry.Dependency, present map[string]bool) []registry.Dependency {
	var out []registry.Dependency
	for _, d := range deps {
		if present[d.ID] || present[registry.NativeKey(d.ID)] {
			out = append(out, d)
		}
	}
	return out
}

// checkRepresentable rejects metadata the target format cannot carry.
func checkRepresentable(e registry.Entry) error {
	var fields []string
	switch v := e.(type) {
	case *registry.Package:
		fields = []string{v.ID, v.Source, v.Comment}
	case *registry.Native:
		fields = []string{v.Path, v.Initializer, v.Finalizer, v.Comment}
	}
	after, before := e.Ordering()
	for _, d := range after {
		fields = append(fields, d.ID)
	}
	for _, d := range before {
		fields = append(fields, d.ID)
	}

	for _, f := range fields {
		if !utf8.ValidString(f) {
			return &SerializationError{
				Key: e.Key(),
				Err: fmt.Errorf("metadata contains invalid UTF-8"),
			}
		}
	}
	return nil
}
