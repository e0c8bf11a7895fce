package workspace

import (
	"fmt"
	"io"
	"os"

	"github.com/moddeck-labs/moddeck/internal/platform"
)

// Ensure creates the workspace structure: the application home directory and
// the managed mods directory. It prints progress messages to w. Existing
// items are skipped with a message.
func Ensure(w io.Writer, managedDir string) error {
	root, err := Root()
	if err != nil {
		return err
	}

	if err := ensureDir(w, root, DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, managedDir, DirPermNormal); err != nil {
		return err
	}
	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
