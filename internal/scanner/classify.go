package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

type dirKind int

const (
	kindUnknown dirKind = iota
	kindAssets          // loose game assets, serve as a content package
	kindLibrary         // contains only loadable libraries
	kindMixed           // both assets and libraries
)

// typicalAssetDirs are directory names that mark a loose-asset mod layout.
var typicalAssetDirs = []string{"msg", "param", "chr", "script", "sfx", "map", "parts"}

// markerPatterns are filenames and globs that mark a content package even
// without the typical directory layout.
var markerPatterns = []string{"mod.ini", "config.ini", "settings.ini", "*.pak", "*.bnd", "*.bhd", "*.bdt"}

// classifyDir inspects a managed-directory child and decides which variant(s)
// it contributes. Unreadable directories classify as unknown.
func classifyDir(dir string) dirKind {
	hasAssets := false

	if _, err := os.Stat(filepath.Join(dir, "regulation.bin")); err == nil {
		hasAssets = true
	}

	if !hasAssets {
		for _, name := range typicalAssetDirs {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
				hasAssets = true
				break
			}
		}
	}

	if !hasAssets {
		for _, pattern := range markerPatterns {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err == nil && len(matches) > 0 {
				hasAssets = true
				break
			}
		}
	}

	hasLibs := len(libraryPaths(filepath.Dir(dir), filepath.Base(dir))) > 0

	switch {
	case hasAssets && hasLibs:
		return kindMixed
	case hasAssets:
		return kindAssets
	case hasLibs:
		return kindLibrary
	default:
		return kindUnknown
	}
}

// libraryPaths collects loadable libraries inside a managed child directory,
// at its root and one level down. Returned paths are relative to the managed
// directory, slash-separated ("SomeMod/bin/mod.dll").
func libraryPaths(managedDir, name string) []string {
	var out []string
	root := filepath.Join(managedDir, name)

	children, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	for _, child := range children {
		if !child.IsDir() {
			if isModLibrary(child.Name()) {
				out = append(out, name+"/"+child.Name())
			}
			continue
		}
		nested, err := os.ReadDir(filepath.Join(root, child.Name()))
		if err != nil {
			continue
		}
		for _, f := range nested {
			if !f.IsDir() && isModLibrary(f.Name()) {
				out = append(out, name+"/"+child.Name()+"/"+f.Name())
			}
		}
	}
	return out
}

// isModLibrary reports whether a filename is a loadable mod library, filtering
// out bundled runtime DLLs.
func isModLibrary(name string) bool {
	return isLoadable(name) && !excludedLibraries[strings.ToLower(name)]
}
