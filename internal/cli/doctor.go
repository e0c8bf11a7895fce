package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/loader"
	"github.com/moddeck-labs/moddeck/internal/workspace"
)

var doctorPrune bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorPrune, "prune", false, "Drop registrations whose external path no longer exists")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the workspace, registry, and loader installation",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	problems := 0

	check := func(ok bool, label, detail string) {
		mark := "[ OK ]"
		if !ok {
			mark = "[FAIL]"
			problems++
		}
		fmt.Fprintf(out, "  %s %s", mark, label)
		if detail != "" {
			fmt.Fprintf(out, " (%s)", detail)
		}
		fmt.Fprintln(out)
	}

	root, err := workspace.Root()
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	check(err == nil && info.IsDir(), "home directory", root)

	managed := config.ManagedDir()
	info, err = os.Stat(managed)
	check(err == nil && info.IsDir(), "managed mods directory", managed)

	regPath, err := workspace.RegistryPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(regPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "  [ OK ] registry (%s not created yet; run 'scan')\n", regPath)
	} else if _, err := openRegistry(); err != nil {
		check(false, "registry", err.Error())
	} else {
		check(true, "registry", regPath)
	}

	if bin, err := loader.Locate(config.LoaderPath(), managed); err != nil {
		check(false, "loader binary", err.Error())
	} else if version, err := loader.Version(bin); err != nil {
		check(false, "loader version", err.Error())
	} else if ok, verr := loader.IsSupported(version); verr != nil || !ok {
		check(false, "loader version", fmt.Sprintf("%s found, need >= %s", version, loader.MinVersion))
	} else {
		check(true, "loader", fmt.Sprintf("%s %s", bin, version))
	}

	var stale []string
	for _, p := range config.ExternalPaths() {
		if _, err := os.Stat(p); err != nil {
			check(false, "external path", p)
			stale = append(stale, p)
		} else {
			check(true, "external path", p)
		}
	}

	if doctorPrune && len(stale) > 0 {
		if err := pruneExternals(cmd, stale); err != nil {
			return err
		}
		problems -= len(stale)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Fprintln(out, "Everything looks good.")
	return nil
}

// pruneExternals drops vanished external paths from the config and removes
// their registry entries.
func pruneExternals(cmd *cobra.Command, stale []string) error {
	gone := make(map[string]bool, len(stale))
	for _, p := range stale {
		gone[p] = true
	}

	var kept []string
	for _, p := range config.ExternalPaths() {
		if !gone[p] {
			kept = append(kept, p)
		}
	}
	if err := config.SetExternalPaths(kept); err != nil {
		return err
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	for _, p := range stale {
		removed, err := reg.Remove(p)
		if err != nil {
			return err
		}
		if !removed {
			if _, err := reg.Remove(filepath.Base(p)); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [DEL] pruned %s\n", p)
	}
	return nil
}
