package video

import (
	"fmt"
	"os"
	"sort"
)

// DiscoverFiles lists the regular files in inputDir, sorted for a
// deterministic processing order. The scan is intentionally non-recursive
// and happens exactly once per run: files dropped into the folder after
// the run starts are picked up on the next run, not mid-batch.
func DiscoverFiles(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	return files, nil
}
