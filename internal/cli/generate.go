package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/engine"
	"github.com/moddeck-labs/moddeck/internal/resolver"
)

var generateOutput string

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Profile output path (default: profile_path config)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the loader profile",
	Long: `Resolve the load order for all enabled mods and write the loader
profile. Generation is deterministic: an unchanged registry produces a
byte-identical profile, in which case the file is left untouched.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	output := generateOutput
	if output == "" {
		output = config.ProfilePath()
	}

	res, err := engine.Regenerate(reg, engine.Options{
		ManagedDir: config.ManagedDir(),
		OutputPath: output,
	})
	if err != nil {
		var conflict *resolver.ConflictError
		if errors.As(err, &conflict) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Cannot generate: the ordering constraints contradict each other.")
			fmt.Fprintln(out, "Mods in the cycle:")
			for _, key := range conflict.Cycle {
				fmt.Fprintf(out, "  - %s\n", key)
			}
			fmt.Fprintln(out, "Relax a constraint with 'order set' or 'order clear' and retry.")
		}
		return err
	}

	out := cmd.OutOrStdout()
	for i, key := range res.Order {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, key)
	}
	if res.Changed {
		printer.Fprintf(out, "Wrote %s (%d mods).\n", res.Path, len(res.Order))
	} else {
		printer.Fprintf(out, "%s already up to date (%d mods).\n", res.Path, len(res.Order))
	}
	return nil
}
