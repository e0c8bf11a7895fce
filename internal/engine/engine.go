package engine

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/moddeck-labs/moddeck/internal/profile"
	"github.com/moddeck-labs/moddeck/internal/registry"
	"github.com/moddeck-labs/moddeck/internal/resolver"
)

// Options configures a regeneration.
type Options struct {
	ManagedDir string // managed mods directory
	OutputPath string // profile file to (re)generate
}

// Result reports what a regeneration produced. Changed replaces implicit
// change notification: false means the on-disk profile already matched.
type Result struct {
	Order   []string // entry keys in final load order
	Changed bool
	Path    string
}

// Regenerate resolves, renders, and publishes the loader profile for the
// registry's loadable entries. On a resolution conflict the error is
// *resolver.ConflictError and nothing is written.
func Regenerate(reg *registry.Registry, opts Options) (*Result, error) {
	ordered, err := resolver.Resolve(reg.Loadable())
	if err != nil {
		return nil, err
	}

	p, err := profile.Render(ordered, profile.Options{
		ManagedDir: opts.ManagedDir,
		OutputDir:  filepath.Dir(opts.OutputPath),
	})
	if err != nil {
		return nil, err
	}
	data, err := profile.Encode(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: opts.OutputPath}
	for _, e := range ordered {
		res.Order = append(res.Order, e.Key())
	}

	existing, readErr := os.ReadFile(opts.OutputPath)
	if readErr == nil && bytes.Equal(existing, data) {
		return res, nil
	}

	if err := profile.Write(opts.OutputPath, data); err != nil {
		return nil, err
	}
	res.Changed = true
	return res, nil
}
