package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/branding"
	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/workspace"
)

var initManagedDir string

func init() {
	initCmd.Flags().StringVar(&initManagedDir, "managed-dir", "", "Managed mods directory to create (default: "+workspace.DefaultManagedDir+")")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the workspace",
	Long: `Create the application home directory and the managed mods directory,
and record the managed directory in the config. Safe to run again;
existing directories are left alone.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	managed := initManagedDir
	if managed == "" {
		managed = config.ManagedDir()
	}

	fmt.Fprintf(out, "Initializing %s workspace...\n", branding.DisplayName())
	if err := workspace.Ensure(out, managed); err != nil {
		return err
	}
	if err := config.Set(config.KeyManagedDir, managed); err != nil {
		return err
	}

	fmt.Fprintf(out, "Done. Drop mods into %s and run '%s scan'.\n", managed, branding.CLIName())
	return nil
}
