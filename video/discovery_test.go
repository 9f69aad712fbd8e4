package video

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()

	names := []string{"b_video.mp4", "a_video.mkv", "notes.txt"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	// Subdirectories are not descended into.
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	files, err := DiscoverFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverFiles() error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(files), files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("Expected sorted file list, got %v", files)
	}
	for _, f := range files {
		if f == "nested" {
			t.Error("Directory entry leaked into file list")
		}
	}
}

func TestDiscoverFilesEmpty(t *testing.T) {
	files, err := DiscoverFiles(t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverFiles() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected empty list, got %v", files)
	}
}

func TestDiscoverFilesMissingDirectory(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}
