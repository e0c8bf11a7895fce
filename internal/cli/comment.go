package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(commentCmd)
}

var commentCmd = &cobra.Command{
	Use:   "comment <mod> [text...]",
	Short: "Annotate a mod",
	Long:  `Set a free-text note on a registry entry. Omitting the text clears the note.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if err := reg.SetComment(args[0], text); err != nil {
			return err
		}
		if text == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared comment on %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Set comment on %s\n", args[0])
		}
		return nil
	},
}
