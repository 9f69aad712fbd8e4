package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Validation is the result of the cheap pre-conversion file checks.
type Validation struct {
	OK     bool
	Reason string
}

// IsVideoFile checks if the given file extension is one of known video file extensions
func IsVideoFile(path string) bool {
	var desiredExtensions = []string{".mp4", ".webm", ".mov", ".flv", ".mkv", ".avi", ".wmv", ".mpg", ".mpeg", ".m4v", ".ts"}

	ext := filepath.Ext(path)
	ext = strings.ToLower(ext) // handle cases where extension is upper case

	for _, v := range desiredExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// ValidateFile runs the checks that need no external tool: the file must
// exist, be a regular non-empty file, and carry an accepted extension.
// A failed validation is not an error for the run; the caller skips the
// file and moves on.
func ValidateFile(path string) Validation {
	fi, err := os.Stat(path)
	if err != nil {
		return Validation{Reason: fmt.Sprintf("file not accessible: %v", err)}
	}
	if fi.IsDir() {
		return Validation{Reason: "is a directory"}
	}
	if fi.Size() == 0 {
		return Validation{Reason: "file is empty"}
	}
	if !IsVideoFile(path) {
		return Validation{Reason: fmt.Sprintf("unsupported extension %q", filepath.Ext(path))}
	}
	return Validation{OK: true}
}

// HasVideoStream asks ffprobe whether the file contains at least one
// video stream. A container full of audio or subtitles validates fine on
// extension alone, so this is the last gate before conversion.
func HasVideoStream(ctx context.Context, path string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-hide_banner", "-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return false, fmt.Errorf("ffprobe failed: %w\noutput: %s", err, extractFirstLine(string(output)))
	}

	return strings.Contains(strings.ToLower(string(output)), "video"), nil
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}
