package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

// loadableExt is the recognized loadable-library extension. The loader only
// injects Windows DLLs.
const loadableExt = ".dll"

// excludedLibraries are runtime DLLs shipped alongside mods that must never
// be registered as native modules.
var excludedLibraries = map[string]bool{
	"libzstd.dll":         true,
	"oo2core_9_win64.dll": true,
}

// Warning reports a candidate that could not be classified cleanly. The
// candidate is still emitted, marked invalid.
type Warning struct {
	Path   string
	Key    string
	Reason string
}

// Report is the outcome of a scan: candidates in discovery order, plus
// per-entry warnings.
type Report struct {
	Candidates []registry.Entry
	Warnings   []Warning
}

// Scan enumerates candidates under managedDir and from the externally
// registered paths. Rescans are idempotent: candidate identity keys are
// stable, so reconciling the same tree twice changes nothing.
func Scan(managedDir string, externalPaths []string) (*Report, error) {
	rep := &Report{}
	seen := make(map[string]bool)

	if err := scanManaged(managedDir, rep, seen); err != nil {
		return nil, err
	}
	for _, p := range externalPaths {
		scanExternal(p, rep, seen)
	}
	return rep, nil
}

// scanManaged walks the immediate children of the managed directory.
// Directories become content packages (or native modules, for library-only
// drops); loose loadable files become native modules.
func scanManaged(dir string, rep *Report, seen map[string]bool) error {
	children, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading managed directory %s: %w", dir, err)
	}

	for _, child := range children {
		name := child.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		if !child.IsDir() {
			if !isModLibrary(name) {
				continue
			}
			addCandidate(rep, seen, &registry.Native{Path: name, Enabled: true})
			continue
		}

		switch classifyDir(filepath.Join(dir, name)) {
		case kindAssets:
			addCandidate(rep, seen, &registry.Package{ID: name, Source: name, Enabled: true})
		case kindLibrary:
			for _, rel := range libraryPaths(dir, name) {
				addCandidate(rep, seen, &registry.Native{Path: rel, Enabled: true})
			}
		case kindMixed:
			addCandidate(rep, seen, &registry.Package{ID: name, Source: name, Enabled: true})
			for _, rel := range libraryPaths(dir, name) {
				addCandidate(rep, seen, &registry.Native{Path: rel, Enabled: true})
			}
		default:
			// No recognizable mod content; still a package candidate, the
			// loader treats any asset directory as an overlay root.
			addCandidate(rep, seen, &registry.Package{ID: name, Source: name, Enabled: true})
		}
	}
	return nil
}

// scanExternal classifies one externally registered path by filesystem kind.
// Failures flag the candidate invalid instead of aborting the scan.
func scanExternal(path string, rep *Report, seen map[string]bool) {
	info, err := os.Stat(path)
	if err != nil {
		reason := "path does not exist"
		if !os.IsNotExist(err) {
			reason = fmt.Sprintf("path is not accessible: %v", err)
		}
		e := invalidExternal(path, reason)
		rep.Warnings = append(rep.Warnings, Warning{Path: path, Key: e.Key(), Reason: reason})
		addCandidate(rep, seen, e)
		return
	}

	if info.IsDir() {
		addCandidate(rep, seen, &registry.Package{
			ID:       filepath.Base(path),
			Source:   path,
			External: true,
			Enabled:  true,
		})
		return
	}

	if !isLoadable(path) {
		reason := fmt.Sprintf("not a %s file", loadableExt)
		e := invalidExternal(path, reason)
		rep.Warnings = append(rep.Warnings, Warning{Path: path, Key: e.Key(), Reason: reason})
		addCandidate(rep, seen, e)
		return
	}

	addCandidate(rep, seen, &registry.Native{
		Path:     path,
		External: true,
		Enabled:  true,
	})
}

// invalidExternal builds a flagged candidate for a path that failed
// classification, guessing the variant from the filename.
func invalidExternal(path, reason string) registry.Entry {
	if isLoadable(path) {
		return &registry.Native{
			Path:          path,
			External:      true,
			Enabled:       true,
			Invalid:       true,
			InvalidReason: reason,
		}
	}
	return &registry.Package{
		ID:            filepath.Base(path),
		Source:        path,
		External:      true,
		Enabled:       true,
		Invalid:       true,
		InvalidReason: reason,
	}
}

// addCandidate appends a candidate unless its identity key was already
// produced by this scan; duplicates get a warning and are dropped.
func addCandidate(rep *Report, seen map[string]bool, e registry.Entry) {
	if seen[e.Key()] {
		rep.Warnings = append(rep.Warnings, Warning{
			Key:    e.Key(),
			Reason: "duplicate identity in scan, keeping the first occurrence",
		})
		return
	}
	seen[e.Key()] = true
	rep.Candidates = append(rep.Candidates, e)
}

func isLoadable(name string) bool {
	return strings.EqualFold(filepath.Ext(name), loadableExt)
}
