package loader

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/moddeck-labs/moddeck/internal/branding"
)

// Locate resolves the loader binary. A configured path wins; otherwise the
// binary is searched on PATH, then in the conventional install location next
// to the managed directory (<managed>/../me3p/bin/).
func Locate(configured, managedDir string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("configured loader path %s: %w", configured, err)
		}
		return configured, nil
	}

	name := branding.LoaderName()
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}

	bin := name
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	conventional := filepath.Join(filepath.Dir(managedDir), name+"p", "bin", bin)
	if _, err := os.Stat(conventional); err == nil {
		return conventional, nil
	}

	return "", fmt.Errorf("loader binary %q not found; set loader_path in the config", name)
}
