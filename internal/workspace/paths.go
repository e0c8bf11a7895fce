package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moddeck-labs/moddeck/internal/branding"
)

// File and directory name constants for the workspace convention.
const (
	RegistryFile       = "mods.yaml"
	DefaultManagedDir  = "Mods"
	DefaultProfileFile = "current.me3"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Root returns the path to the application home directory. It checks the
// MODDECK_HOME environment variable first, then falls back to ~/.moddeck.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// RegistryPath returns the path to the persisted mod registry.
func RegistryPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, RegistryFile), nil
}

// DefaultProfilePath returns the profile location for a managed directory:
// <managed>/current.me3, next to the mods the loader will read.
func DefaultProfilePath(managedDir string) string {
	return filepath.Join(managedDir, DefaultProfileFile)
}
