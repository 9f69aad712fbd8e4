package video

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// unsafeChars matches anything outside the accepted filename character set.
// The dot stays so extension separators survive normalization.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// underscoreRuns collapses the multiple underscores produced when several
// adjacent characters get replaced.
var underscoreRuns = regexp.MustCompile(`_{2,}`)

// NormalizeFilename rewrites name into the safe character set: spaces and
// any other character outside [A-Za-z0-9._-] become underscores, and runs
// of underscores collapse to one. Normalizing an already-normalized name
// is a no-op.
func NormalizeFilename(name string) string {
	normalized := strings.ReplaceAll(name, " ", "_")
	normalized = unsafeChars.ReplaceAllString(normalized, "_")
	normalized = underscoreRuns.ReplaceAllString(normalized, "_")
	return normalized
}

// NormalizeFile renames dir/name on disk to its normalized form and
// returns the final name. When the normalized name is already taken by
// another file, a numeric counter is inserted before the extension
// (never overwrites). Already-normalized files are left untouched.
func NormalizeFile(dir, name string) (string, error) {
	normalized := NormalizeFilename(name)
	if normalized == name {
		return name, nil
	}

	ext := filepath.Ext(normalized)
	stem := strings.TrimSuffix(normalized, ext)

	target := normalized
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, target)); os.IsNotExist(err) {
			break
		}
		target = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}

	if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, target)); err != nil {
		return "", fmt.Errorf("failed to rename %q: %w", name, err)
	}
	return target, nil
}

// OutputPath returns the destination path for the converted version of
// inputName, inserting a counter when a previous run already produced a
// file with the same name.
func OutputPath(outputDir, inputName string) string {
	ext := filepath.Ext(inputName)
	stem := strings.TrimSuffix(inputName, ext)

	path := filepath.Join(outputDir, stem+"_converted.mp4")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(outputDir, fmt.Sprintf("%s_converted_%d.mp4", stem, counter))
	}
}
