package loader

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"time"
)

// probeTimeout bounds the --version invocation; a wedged loader binary must
// not hang the CLI.
const probeTimeout = 5 * time.Second

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.-]+)?)`)

// Version executes the loader with --version and extracts its semver.
func Version(binPath string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binPath, "--version").Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("loader version probe timed out after %s", probeTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", binPath, err)
	}

	return ParseVersionOutput(string(out))
}

// ParseVersionOutput extracts the first semver token from --version output
// (e.g., "me3 0.8.1 (windows)" -> "0.8.1").
func ParseVersionOutput(out string) (string, error) {
	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("no version found in output %q", out)
	}
	return m[1], nil
}

// LaunchCommand builds the command that starts the game through the loader
// with the given profile. Process supervision is the caller's concern.
func LaunchCommand(binPath, profilePath, game string) *exec.Cmd {
	args := []string{"launch", "--profile", profilePath}
	if game != "" {
		args = append(args, "--game", game)
	}
	return exec.Command(binPath, args...)
}
