// Package config reads and writes the application configuration file
// (~/.moddeck/config.yaml) through Viper, with MODDECK_* environment
// variable overrides. It holds the managed mods directory, the registered
// external mod paths, the profile output path, and the loader binary path.
package config
