package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

var (
	orderAfter  string
	orderBefore string
)

func init() {
	orderSetCmd.Flags().StringVar(&orderAfter, "after", "", "Comma-separated refs this mod must load after (suffix '?' marks optional)")
	orderSetCmd.Flags().StringVar(&orderBefore, "before", "", "Comma-separated refs this mod must load before (suffix '?' marks optional)")
	orderCmd.AddCommand(orderSetCmd)
	orderCmd.AddCommand(orderLastCmd)
	orderCmd.AddCommand(orderClearCmd)
	rootCmd.AddCommand(orderCmd)
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage explicit load-order constraints",
	Long: `Set, clear, or pin explicit ordering constraints on a mod. Constraints
feed the resolver and override the default package-before-native rule
for the pairs they mention.`,
}

var orderSetCmd = &cobra.Command{
	Use:   "set <mod>",
	Short: "Replace a mod's ordering constraints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		after := parseDeps(orderAfter)
		before := parseDeps(orderBefore)
		warnDangling(cmd, reg, append(after, before...))
		if err := reg.SetOrdering(args[0], after, before); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated ordering for %s (%d after, %d before)\n",
			args[0], len(after), len(before))
		return nil
	},
}

var orderLastCmd = &cobra.Command{
	Use:   "last <package>",
	Short: "Pin a content package to load after all others",
	Long: `Rewrite the package's load-after hints to name every other enabled
package as an optional dependency. The pin tracks the enabled set at
the time of the call; re-run it after enabling or disabling packages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if err := reg.SetLoadLast(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s to load last\n", args[0])
		return nil
	},
}

var orderClearCmd = &cobra.Command{
	Use:   "clear <mod>",
	Short: "Drop all of a mod's ordering constraints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		if err := reg.SetOrdering(args[0], nil, nil); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared ordering for %s\n", args[0])
		return nil
	},
}

// warnDangling flags constraint refs that match nothing in the registry. The
// resolver ignores them, but a typo here is otherwise silent.
func warnDangling(cmd *cobra.Command, reg *registry.Registry, deps []registry.Dependency) {
	for _, d := range deps {
		if _, ok := reg.Get(d.ID); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  [WARN] %q matches no registered mod; the constraint is inert\n", d.ID)
		}
	}
}
