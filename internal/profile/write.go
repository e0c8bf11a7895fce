package profile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write publishes profile bytes atomically: the document is written to a
// temporary file in the target directory and renamed over the destination,
// so the loader can never observe a partial profile.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &SerializationError{Path: path, Err: fmt.Errorf("creating profile directory: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &SerializationError{Path: path, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &SerializationError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SerializationError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &SerializationError{Path: path, Err: err}
	}
	return nil
}
