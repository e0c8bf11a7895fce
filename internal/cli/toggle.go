package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <mod>...",
	Short: "Enable mods",
	Long:  `Include the given mods in ordering and profile generation again.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <mod>...",
	Short: "Disable mods",
	Long: `Exclude the given mods from ordering and profile generation. Disabled
mods stay in the registry and keep their annotations and ordering hints.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, false)
	},
}

func setEnabled(cmd *cobra.Command, refs []string, on bool) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := reg.SetEnabled(ref, on); err != nil {
			return err
		}
		state := "disabled"
		if on {
			state = "enabled"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, ref)
	}
	return nil
}
