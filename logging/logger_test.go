package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesLeveledLines(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("converted %s", "clip.mp4")
	log.Warn("skipping %s", "notes.txt")
	log.Error("ffmpeg failed for %s", "broken.avi")

	if err := log.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"INFO",
		"converted clip.mp4",
		"WARN",
		"skipping notes.txt",
		"ERROR",
		"ffmpeg failed for broken.avi",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Log missing %q, got:\n%s", want, content)
		}
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 log lines, got %d", len(lines))
	}
}

func TestLoggerAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	first.Info("first run")
	_ = first.Close()

	second, err := New(dir)
	if err != nil {
		t.Fatalf("New() error on reopen: %v", err)
	}
	second.Info("second run")
	_ = second.Close()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "first run") || !strings.Contains(content, "second run") {
		t.Errorf("Expected both runs in the log, got:\n%s", content)
	}
}

func TestLoggerPath(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer log.Close()

	if log.Path() != filepath.Join(dir, LogFileName) {
		t.Errorf("Path() = %q, expected %q", log.Path(), filepath.Join(dir, LogFileName))
	}
}

func TestLoggerMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("Expected error for missing log directory")
	}
}
