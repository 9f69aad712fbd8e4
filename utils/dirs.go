package utils

import (
	"fmt"
	"os"
)

// EnsureDirectories creates each directory if it does not already exist.
// Idempotent; an error here is fatal to the run since every later step
// depends on the layout.
func EnsureDirectories(paths ...string) error {
	for _, path := range paths {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}
