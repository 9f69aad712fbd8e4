package video

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var safeCharset = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Spaces become underscores", "my holiday video.mp4", "my_holiday_video.mp4"},
		{"Already normalized", "my_holiday_video.mp4", "my_holiday_video.mp4"},
		{"Quotes removed", `the "best" clip.mkv`, "the_best_clip.mkv"},
		{"Windows-unsafe characters", `what?is<this>.avi`, "what_is_this_.avi"},
		{"Pipe and colon", "a|b:c.mov", "a_b_c.mov"},
		{"Unicode replaced", "café视频.mp4", "caf_.mp4"},
		{"Adjacent replacements collapse", "a  ?  b.mp4", "a_b.mp4"},
		{"Hyphens kept", "some-file.mp4", "some-file.mp4"},
		{"Dots kept", "part.one.mp4", "part.one.mp4"},
		{"Parentheses", "clip (1).mp4", "clip_1_.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeFilename(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeFilenameCharset(t *testing.T) {
	inputs := []string{
		"my holiday video.mp4",
		`the "best" clip.mkv`,
		"weird~!@#$%^&*()name.avi",
		"tabs\tand\nnewlines.mov",
		"ünïcödé.webm",
	}

	for _, input := range inputs {
		result := NormalizeFilename(input)
		if !safeCharset.MatchString(result) {
			t.Errorf("NormalizeFilename(%q) = %q, contains characters outside the safe set", input, result)
		}
	}
}

func TestNormalizeFilenameIdempotent(t *testing.T) {
	inputs := []string{
		"my holiday video.mp4",
		`what?is<this>.avi`,
		"a  ?  b.mp4",
		"already_safe-name.mkv",
	}

	for _, input := range inputs {
		once := NormalizeFilename(input)
		twice := NormalizeFilename(once)
		if once != twice {
			t.Errorf("NormalizeFilename is not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}

func TestNormalizeFileRenamesOnDisk(t *testing.T) {
	dir := t.TempDir()
	original := "my holiday video.mp4"

	if err := os.WriteFile(filepath.Join(dir, original), []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result, err := NormalizeFile(dir, original)
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}

	if result != "my_holiday_video.mp4" {
		t.Errorf("Expected normalized name 'my_holiday_video.mp4', got %q", result)
	}

	if _, err := os.Stat(filepath.Join(dir, original)); !os.IsNotExist(err) {
		t.Error("Original file still exists after normalization")
	}
	if _, err := os.Stat(filepath.Join(dir, result)); err != nil {
		t.Errorf("Normalized file missing: %v", err)
	}
}

func TestNormalizeFileNoOpForCleanName(t *testing.T) {
	dir := t.TempDir()
	name := "already_clean.mp4"

	if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result, err := NormalizeFile(dir, name)
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}
	if result != name {
		t.Errorf("Expected no-op for clean name, got %q", result)
	}
}

func TestNormalizeFileCollision(t *testing.T) {
	dir := t.TempDir()

	// Two distinct inputs normalize to the same name; the second gets a counter.
	for _, name := range []string{"my_file.mp4", "my file.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	result, err := NormalizeFile(dir, "my file.mp4")
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}

	if result != "my_file_1.mp4" {
		t.Errorf("Expected collision suffix 'my_file_1.mp4', got %q", result)
	}

	// The existing file must be untouched.
	if _, err := os.Stat(filepath.Join(dir, "my_file.mp4")); err != nil {
		t.Errorf("Pre-existing file was disturbed: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	path := OutputPath(dir, "clip.mkv")
	expected := filepath.Join(dir, "clip_converted.mp4")
	if path != expected {
		t.Errorf("OutputPath() = %q, expected %q", path, expected)
	}
}

func TestOutputPathCollision(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "clip_converted.mp4"), []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to create existing output: %v", err)
	}

	path := OutputPath(dir, "clip.mkv")
	expected := filepath.Join(dir, "clip_converted_1.mp4")
	if path != expected {
		t.Errorf("OutputPath() = %q, expected %q", path, expected)
	}
}
