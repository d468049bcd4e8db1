package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the per-collection data-in/data-out directories.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// SafeJoin flattens name to its base so client-supplied filenames cannot
// escape root.
func SafeJoin(root, name string) string {
	return filepath.Join(root, filepath.Base(name))
}
