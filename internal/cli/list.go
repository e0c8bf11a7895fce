package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

var (
	listKindFilter string
	listJSON       bool
)

func init() {
	listCmd.Flags().StringVar(&listKindFilter, "kind", "", "Filter by kind (package, native)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered mods",
	Long:  `List every registry entry with its kind, state, and annotation.`,
	RunE:  runList,
}

// listEntry represents a registry entry for display.
type listEntry struct {
	Key      string `json:"key"`
	Kind     string `json:"kind"`
	Enabled  bool   `json:"enabled"`
	Preload  bool   `json:"preload,omitempty"`
	External bool   `json:"external,omitempty"`
	Invalid  bool   `json:"invalid,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, e := range reg.Entries() {
		if listKindFilter != "" && string(e.Kind()) != listKindFilter {
			continue
		}
		le := listEntry{
			Key:      e.Key(),
			Kind:     string(e.Kind()),
			Enabled:  e.IsEnabled(),
			External: e.IsExternal(),
			Invalid:  !e.IsValid(),
		}
		switch v := e.(type) {
		case *registry.Package:
			le.Comment = v.Comment
		case *registry.Native:
			le.Comment = v.Comment
			le.Preload = v.Preload
		}
		entries = append(entries, le)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		if listKindFilter != "" {
			fmt.Fprintf(out, "No mods matching --kind=%s\n", listKindFilter)
		} else {
			fmt.Fprintln(out, "No mods registered yet. Run 'scan' first.")
		}
		return nil
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling list: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tSTATE\tFLAGS\tCOMMENT")
	for _, le := range entries {
		state := "enabled"
		if !le.Enabled {
			state = "disabled"
		}
		if le.Invalid {
			state = "invalid"
		}
		flags := ""
		if le.External {
			flags += "external "
		}
		if le.Preload {
			flags += "preload"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", le.Key, le.Kind, state, flags, le.Comment)
	}
	return w.Flush()
}
