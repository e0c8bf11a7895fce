package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var preloadOff bool

func init() {
	preloadCmd.Flags().BoolVar(&preloadOff, "off", false, "Clear the preload flag instead of setting it")
	rootCmd.AddCommand(preloadCmd)
}

var preloadCmd = &cobra.Command{
	Use:   "preload <native>",
	Short: "Mark a native module for early loading",
	Long: `Flag a native module to load before content packages are mounted.
Preloaded natives are exempt from the default package-before-native
rule and are emitted with load_early in the profile.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if err := reg.SetPreload(args[0], !preloadOff); err != nil {
			return err
		}
		if preloadOff {
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared preload on %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s for preload\n", args[0])
		}
		return nil
	},
}
