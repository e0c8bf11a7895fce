package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/moddeck-labs/moddeck/internal/config"
	"github.com/moddeck-labs/moddeck/internal/engine"
	"github.com/moddeck-labs/moddeck/internal/loader"
)

var launchSkipGenerate bool

func init() {
	launchCmd.Flags().BoolVar(&launchSkipGenerate, "skip-generate", false, "Launch with the existing profile without regenerating")
	rootCmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Regenerate the profile and start the game through the loader",
	RunE:  runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	profilePath := config.ProfilePath()

	if !launchSkipGenerate {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		res, err := engine.Regenerate(reg, engine.Options{
			ManagedDir: config.ManagedDir(),
			OutputPath: profilePath,
		})
		if err != nil {
			return err
		}
		if res.Changed {
			log.Info("profile regenerated", "path", res.Path, "mods", len(res.Order))
		}
	}

	if _, err := os.Stat(profilePath); err != nil {
		return fmt.Errorf("profile %s not found; run 'generate' first: %w", profilePath, err)
	}

	bin, err := loader.Locate(config.LoaderPath(), config.ManagedDir())
	if err != nil {
		return err
	}

	if version, err := loader.Version(bin); err != nil {
		log.Warn("could not probe loader version", "err", err)
	} else if ok, err := loader.IsSupported(version); err != nil {
		log.Warn("could not compare loader version", "version", version, "err", err)
	} else if !ok {
		log.Warn("loader version is older than the minimum the profile format needs",
			"version", version, "minimum", loader.MinVersion)
	}

	run := loader.LaunchCommand(bin, profilePath, config.Game())
	run.Stdin = os.Stdin
	run.Stdout = cmd.OutOrStdout()
	run.Stderr = cmd.ErrOrStderr()

	log.Debug("launching", "bin", bin, "profile", profilePath)
	if err := run.Run(); err != nil {
		return fmt.Errorf("loader exited with error: %w", err)
	}
	return nil
}
