package registry

import (
	"fmt"
	"reflect"
)

// Registry is the in-memory catalog of known mod entries. It preserves the
// order in which entries were first registered; that order is the tie-break
// for the resolver and the iteration order of every view.
//
// A Registry opened from a file rewrites that file after every mutation.
// Mutation and read calls are not synchronized; a host that scans on a
// background worker must build the new state aside and swap it in whole.
type Registry struct {
	entries []Entry
	index   map[string]int
	path    string // persisted file; empty for an in-memory registry
}

// New returns an empty in-memory registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Open loads a registry from the YAML document at path. A missing file yields
// an empty registry bound to that path. The document is validated against the
// embedded schema before decoding.
func Open(path string) (*Registry, error) {
	r, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	r.path = path
	return r, nil
}

// Path returns the persisted file path, or "" for an in-memory registry.
func (r *Registry) Path() string { return r.path }

// Len returns the number of entries, disabled and invalid ones included.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns all entries in first-registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Loadable returns the entries that participate in ordering and
// serialization: enabled and valid, in first-registration order.
func (r *Registry) Loadable() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.IsEnabled() && e.IsValid() {
			out = append(out, e)
		}
	}
	return out
}

// Get looks up an entry by reference: package id, native path, or native base
// filename.
func (r *Registry) Get(ref string) (Entry, bool) {
	if i, ok := r.index[ref]; ok {
		return r.entries[i], true
	}
	if i, ok := r.index[NativeKey(ref)]; ok {
		return r.entries[i], true
	}
	return nil, false
}

// Upsert registers an entry. If an entry with the same key exists, the new
// entry replaces its metadata wholesale (last write wins) while keeping the
// original registration position.
func (r *Registry) Upsert(e Entry) error {
	if i, ok := r.index[e.Key()]; ok {
		r.entries[i] = e
	} else {
		r.index[e.Key()] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r.flush()
}

// Remove deletes an entry by reference. It reports whether an entry was
// removed.
func (r *Registry) Remove(ref string) (bool, error) {
	e, ok := r.Get(ref)
	if !ok {
		return false, nil
	}
	r.removeKey(e.Key())
	return true, r.flush()
}

func (r *Registry) removeKey(key string) {
	i := r.index[key]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	delete(r.index, key)
	for k, j := range r.index {
		if j > i {
			r.index[k] = j - 1
		}
	}
}

// SetEnabled toggles an entry's enabled state. Disabled entries are retained
// for display but excluded from ordering and serialization.
func (r *Registry) SetEnabled(ref string, on bool) error {
	e, ok := r.Get(ref)
	if !ok {
		return fmt.Errorf("no entry %q in registry", ref)
	}
	switch v := e.(type) {
	case *Package:
		v.Enabled = on
	case *Native:
		v.Enabled = on
	}
	return r.flush()
}

// SetComment sets or clears an entry's free-text annotation.
func (r *Registry) SetComment(ref, comment string) error {
	e, ok := r.Get(ref)
	if !ok {
		return fmt.Errorf("no entry %q in registry", ref)
	}
	switch v := e.(type) {
	case *Package:
		v.Comment = comment
	case *Native:
		v.Comment = comment
	}
	return r.flush()
}

// SetPreload toggles the preload flag on a native module. Packages cannot be
// preloaded.
func (r *Registry) SetPreload(ref string, on bool) error {
	e, ok := r.Get(ref)
	if !ok {
		return fmt.Errorf("no entry %q in registry", ref)
	}
	n, ok := e.(*Native)
	if !ok {
		return fmt.Errorf("%q is a content package; preload applies to native modules only", ref)
	}
	n.Preload = on
	return r.flush()
}

// SetOrdering replaces an entry's explicit load_after / load_before hints.
func (r *Registry) SetOrdering(ref string, after, before []Dependency) error {
	e, ok := r.Get(ref)
	if !ok {
		return fmt.Errorf("no entry %q in registry", ref)
	}
	switch v := e.(type) {
	case *Package:
		v.LoadAfter, v.LoadBefore = after, before
	case *Native:
		v.LoadAfter, v.LoadBefore = after, before
	}
	return r.flush()
}

// SetLoadLast pins a package to load after every other enabled package by
// rewriting its load_after hints with optional references. The hints track
// the current enabled set; re-run after enabling or disabling packages.
func (r *Registry) SetLoadLast(ref string) error {
	e, ok := r.Get(ref)
	if !ok {
		return fmt.Errorf("no entry %q in registry", ref)
	}
	p, ok := e.(*Package)
	if !ok {
		return fmt.Errorf("%q is a native module; load-last applies to content packages", ref)
	}
	var after []Dependency
	for _, other := range r.entries {
		op, ok := other.(*Package)
		if !ok || !op.Enabled || op.ID == p.ID {
			continue
		}
		after = append(after, Dependency{ID: op.ID, Optional: true})
	}
	p.LoadAfter = after
	return r.flush()
}

// IsLoadLast reports whether a package's load_after hints cover every other
// enabled package.
func (r *Registry) IsLoadLast(ref string) bool {
	e, ok := r.Get(ref)
	if !ok {
		return false
	}
	p, ok := e.(*Package)
	if !ok || len(p.LoadAfter) == 0 {
		return false
	}
	have := make(map[string]bool, len(p.LoadAfter))
	for _, d := range p.LoadAfter {
		have[d.ID] = true
	}
	for _, other := range r.entries {
		op, ok := other.(*Package)
		if !ok || !op.Enabled || op.ID == p.ID {
			continue
		}
		if !have[op.ID] {
			return false
		}
	}
	return true
}

// ChangeSet reports what a reconciliation changed, keyed by entry key.
// It replaces implicit change notification: a non-empty ChangeSet means the
// generated configuration is stale.
type ChangeSet struct {
	Added       []string
	Updated     []string
	Removed     []string
	Invalidated []string
}

// Empty reports whether the reconciliation was a no-op.
func (c *ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 &&
		len(c.Removed) == 0 && len(c.Invalidated) == 0
}

// Apply reconciles scan candidates into the registry. New candidates are
// appended in scan order; existing entries keep user-owned metadata (enabled
// state, comment, ordering hints, preload, optional, init symbols) and take
// the candidate's source-owned fields (location, external flag, validity).
// Non-external entries absent from the candidate set are removed: their
// source vanished from the managed directory. External entries are only ever
// removed by revoking the registration.
func (r *Registry) Apply(candidates []Entry) (*ChangeSet, error) {
	cs := &ChangeSet{}
	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		seen[c.Key()] = true
		i, ok := r.index[c.Key()]
		if !ok {
			r.index[c.Key()] = len(r.entries)
			r.entries = append(r.entries, c)
			cs.Added = append(cs.Added, c.Key())
			if !c.IsValid() {
				cs.Invalidated = append(cs.Invalidated, c.Key())
			}
			continue
		}

		wasValid := r.entries[i].IsValid()
		if merged, changed := mergeCandidate(r.entries[i], c); changed {
			r.entries[i] = merged
			cs.Updated = append(cs.Updated, c.Key())
			if wasValid && !merged.IsValid() {
				cs.Invalidated = append(cs.Invalidated, c.Key())
			}
		}
	}

	for _, e := range r.Entries() {
		if !e.IsExternal() && !seen[e.Key()] {
			r.removeKey(e.Key())
			cs.Removed = append(cs.Removed, e.Key())
		}
	}

	return cs, r.flush()
}

// mergeCandidate folds a scan candidate into an existing entry of the same
// key. Only source-owned fields move; the result reports whether anything
// changed. A kind clash (a directory replaced by a file of the same name)
// takes the candidate wholesale.
func mergeCandidate(existing, candidate Entry) (Entry, bool) {
	if existing.Kind() != candidate.Kind() {
		return candidate, true
	}

	switch old := existing.(type) {
	case *Package:
		c := candidate.(*Package)
		next := *old
		next.Source = c.Source
		next.External = c.External
		next.Invalid = c.Invalid
		next.InvalidReason = c.InvalidReason
		return &next, !reflect.DeepEqual(*old, next)
	case *Native:
		c := candidate.(*Native)
		next := *old
		next.Path = c.Path
		next.External = c.External
		next.Invalid = c.Invalid
		next.InvalidReason = c.InvalidReason
		return &next, !reflect.DeepEqual(*old, next)
	}
	return existing, false
}

// flush rewrites the persisted document. In-memory registries skip it.
func (r *Registry) flush() error {
	if r.path == "" {
		return nil
	}
	return saveFile(r.path, r.entries)
}
