package platform

import (
	"os"
	"runtime"
)

// Chmod sets permissions on workspace files and directories. On Windows,
// where the managed mods tree usually lives, this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
