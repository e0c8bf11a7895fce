package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// documentVersion is the current persisted registry format version.
const documentVersion = 1

// document is the on-disk shape of the registry: one flat entry list with a
// kind discriminator, in first-registration order.
type document struct {
	Version int        `yaml:"version"`
	Entries []entryDoc `yaml:"entries"`
}

// entryDoc is the union of both variants' fields. Which fields are meaningful
// is decided by Kind; the schema enforces the per-kind required set.
type entryDoc struct {
	Kind        string       `yaml:"kind"`
	ID          string       `yaml:"id,omitempty"`
	Source      string       `yaml:"source,omitempty"`
	Path        string       `yaml:"path,omitempty"`
	Enabled     *bool        `yaml:"enabled,omitempty"`
	External    bool         `yaml:"external,omitempty"`
	Optional    bool         `yaml:"optional,omitempty"`
	Preload     bool         `yaml:"preload,omitempty"`
	Initializer string       `yaml:"initializer,omitempty"`
	Finalizer   string       `yaml:"finalizer,omitempty"`
	Comment     string       `yaml:"comment,omitempty"`
	LoadAfter   []Dependency `yaml:"load_after,omitempty"`
	LoadBefore  []Dependency `yaml:"load_before,omitempty"`

	// Invalid state must survive the process: every command reopens the
	// registry, and an unpersisted flag would resurrect the entry as valid.
	Invalid       bool   `yaml:"invalid,omitempty"`
	InvalidReason string `yaml:"invalid_reason,omitempty"`
}

// loadFile reads and decodes a persisted registry. A missing file is not an
// error; it yields an empty registry.
func loadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	result, err := ValidateDocument(data)
	if err != nil {
		return nil, fmt.Errorf("validating registry %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("registry %s is malformed: %s", path, result.Summary())
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("registry %s has version %d, newer than supported %d", path, doc.Version, documentVersion)
	}

	r := New()
	for i, ed := range doc.Entries {
		e, err := ed.toEntry()
		if err != nil {
			return nil, fmt.Errorf("registry %s entry %d: %w", path, i, err)
		}
		if _, dup := r.index[e.Key()]; dup {
			// Duplicate identity in a hand-edited file: last write wins.
			r.entries[r.index[e.Key()]] = e
			continue
		}
		r.index[e.Key()] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// saveFile writes the registry document atomically: encode to a temp file in
// the target directory, then rename over the destination.
func saveFile(path string, entries []Entry) error {
	doc := document{Version: documentVersion, Entries: make([]entryDoc, 0, len(entries))}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, fromEntry(e))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating registry directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp registry file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp registry file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publishing registry %s: %w", path, err)
	}
	return nil
}

func (ed entryDoc) toEntry() (Entry, error) {
	enabled := true
	if ed.Enabled != nil {
		enabled = *ed.Enabled
	}

	switch Kind(ed.Kind) {
	case KindPackage:
		if ed.ID == "" {
			return nil, fmt.Errorf("package entry missing id")
		}
		return &Package{
			ID:            ed.ID,
			Source:        ed.Source,
			External:      ed.External,
			Enabled:       enabled,
			Comment:       ed.Comment,
			LoadAfter:     ed.LoadAfter,
			LoadBefore:    ed.LoadBefore,
			Invalid:       ed.Invalid,
			InvalidReason: ed.InvalidReason,
		}, nil
	case KindNative:
		if ed.Path == "" {
			return nil, fmt.Errorf("native entry missing path")
		}
		return &Native{
			Path:          ed.Path,
			Optional:      ed.Optional,
			Enabled:       enabled,
			Initializer:   ed.Initializer,
			Finalizer:     ed.Finalizer,
			Preload:       ed.Preload,
			External:      ed.External,
			Comment:       ed.Comment,
			LoadAfter:     ed.LoadAfter,
			LoadBefore:    ed.LoadBefore,
			Invalid:       ed.Invalid,
			InvalidReason: ed.InvalidReason,
		}, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", ed.Kind)
	}
}

func fromEntry(e Entry) entryDoc {
	switch v := e.(type) {
	case *Package:
		return entryDoc{
			Kind:          string(KindPackage),
			ID:            v.ID,
			Source:        v.Source,
			Enabled:       &v.Enabled,
			External:      v.External,
			Comment:       v.Comment,
			LoadAfter:     v.LoadAfter,
			LoadBefore:    v.LoadBefore,
			Invalid:       v.Invalid,
			InvalidReason: v.InvalidReason,
		}
	case *Native:
		return entryDoc{
			Kind:          string(KindNative),
			Path:          v.Path,
			Enabled:       &v.Enabled,
			External:      v.External,
			Optional:      v.Optional,
			Preload:       v.Preload,
			Initializer:   v.Initializer,
			Finalizer:     v.Finalizer,
			Comment:       v.Comment,
			LoadAfter:     v.LoadAfter,
			LoadBefore:    v.LoadBefore,
			Invalid:       v.Invalid,
			InvalidReason: v.InvalidReason,
		}
	}
	// The Entry interface is sealed; both variants are covered above.
	panic("registry: unknown entry variant")
}
