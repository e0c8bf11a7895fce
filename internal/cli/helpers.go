package cli

import (
	"fmt"
	"strings"

	"github.com/moddeck-labs/moddeck/internal/registry"
	"github.com/moddeck-labs/moddeck/internal/workspace"
)

// openRegistry loads the persisted registry; mutations through the returned
// handle are flushed back to the same file.
func openRegistry() (*registry.Registry, error) {
	path, err := workspace.RegistryPath()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	return reg, nil
}

// parseDeps parses a comma-separated constraint list. A trailing "?" marks a
// reference optional: "SeamlessCoop,nrsc.dll?" -> required + optional.
func parseDeps(s string) []registry.Dependency {
	if s == "" {
		return nil
	}
	var deps []registry.Dependency
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		optional := strings.HasSuffix(item, "?")
		deps = append(deps, registry.Dependency{
			ID:       strings.TrimSuffix(item, "?"),
			Optional: optional,
		})
	}
	return deps
}
