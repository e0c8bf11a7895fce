package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/moddeck-labs/moddeck/internal/branding"
	"github.com/moddeck-labs/moddeck/internal/workspace"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Well-known configuration keys.
const (
	KeyManagedDir    = "managed_dir"
	KeyProfilePath   = "profile_path"
	KeyLoaderPath    = "loader_path"
	KeyGame          = "game"
	KeyExternalPaths = "external_paths"
)

// Dir returns the path to the config directory (~/.moddeck/).
func Dir() string {
	root, err := workspace.Root()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the config file (~/.moddeck/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyManagedDir, workspace.DefaultManagedDir)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// ManagedDir returns the managed mods directory.
func ManagedDir() string {
	return viper.GetString(KeyManagedDir)
}

// ProfilePath returns the loader profile output path, defaulting to
// current.me3 inside the managed directory.
func ProfilePath() string {
	if p := viper.GetString(KeyProfilePath); p != "" {
		return p
	}
	return workspace.DefaultProfilePath(ManagedDir())
}

// LoaderPath returns the configured loader binary path, empty if unset.
func LoaderPath() string {
	return viper.GetString(KeyLoaderPath)
}

// Game returns the loader's game identifier, empty if unset.
func Game() string {
	return viper.GetString(KeyGame)
}

// ExternalPaths returns the externally registered mod paths.
func ExternalPaths() []string {
	return viper.GetStringSlice(KeyExternalPaths)
}

// SetExternalPaths replaces the externally registered mod paths and saves.
func SetExternalPaths(paths []string) error {
	return save(KeyExternalPaths, paths)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	return save(key, value)
}

func save(key string, value interface{}) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
