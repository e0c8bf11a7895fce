package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/scanner"
)

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(unregisterCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <path>",
	Short: "Register an external mod path",
	Long: `Register a mod living outside the managed directory: a directory is
registered as a content package, a file as a native module.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var unregisterCmd = &cobra.Command{
	Use:   "unregister <path>",
	Short: "Revoke an external mod registration",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnregister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	managed, err := filepath.Abs(config.ManagedDir())
	if err == nil && insideDir(path, managed) {
		return fmt.Errorf("%s is inside the managed directory; it is picked up by 'scan' already", path)
	}

	externals := config.ExternalPaths()
	for _, existing := range externals {
		if existing == path {
			return fmt.Errorf("%s is already registered", path)
		}
	}

	externals = append(externals, path)
	if err := config.SetExternalPaths(externals); err != nil {
		return err
	}

	// Fold the new path into the registry right away. Apply reconciles the
	// whole entry set, so the scan must cover every source, not just the
	// new path.
	rep, err := scanner.Scan(config.ManagedDir(), externals)
	if err != nil {
		return err
	}
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	if _, err := reg.Apply(rep.Candidates); err != nil {
		return fmt.Errorf("reconciling registry: %w", err)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  [WARN] %s: %s\n", w.Key, w.Reason)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", path)
	return nil
}

func runUnregister(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	externals := config.ExternalPaths()
	kept := externals[:0]
	found := false
	for _, existing := range externals {
		if existing == path || existing == args[0] {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return fmt.Errorf("%s is not a registered external path", args[0])
	}
	if err := config.SetExternalPaths(kept); err != nil {
		return err
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	// External directories are keyed by their base name, files by base
	// filename; try both forms.
	removed, err := reg.Remove(path)
	if err != nil {
		return err
	}
	if !removed {
		if removed, err = reg.Remove(filepath.Base(path)); err != nil {
			return err
		}
	}
	if removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed registry entry for %s\n", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unregistered %s\n", path)
	return nil
}

// insideDir reports whether path is dir or lies beneath it.
func insideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
