package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/scanner"
)

var printer = message.NewPrinter(language.English)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rescan mod sources and reconcile the registry",
	Long: `Enumerate the managed mods directory and all registered external paths,
classify each candidate, and reconcile the result into the registry.
Rescanning an unchanged tree is a no-op.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	managed := config.ManagedDir()
	externals := config.ExternalPaths()
	log.Debug("scanning", "managed", managed, "externals", len(externals))

	rep, err := scanner.Scan(managed, externals)
	if err != nil {
		return err
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	cs, err := reg.Apply(rep.Candidates)
	if err != nil {
		return fmt.Errorf("reconciling registry: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, w := range rep.Warnings {
		log.Warn("scan warning", "entry", w.Key, "reason", w.Reason)
	}

	if cs.Empty() {
		printer.Fprintf(out, "Registry unchanged (%d entries).\n", reg.Len())
		return nil
	}

	printer.Fprintf(out, "Registry updated: %d added, %d updated, %d removed.\n",
		len(cs.Added), len(cs.Updated), len(cs.Removed))
	for _, key := range cs.Added {
		fmt.Fprintf(out, "  [ADD] %s\n", key)
	}
	for _, key := range cs.Updated {
		fmt.Fprintf(out, "  [UPD] %s\n", key)
	}
	for _, key := range cs.Removed {
		fmt.Fprintf(out, "  [DEL] %s\n", key)
	}
	for _, key := range cs.Invalidated {
		fmt.Fprintf(out, "  [BAD] %s\n", key)
	}
	fmt.Fprintf(out, "Run '%s generate' to refresh the loader profile.\n", rootCmd.Use)
	return nil
}
