package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ValidateFFmpegDependencies checks if ffmpeg and ffprobe are available in PATH
func ValidateFFmpegDependencies() error {
	// Check for ffprobe
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return fmt.Errorf("ffprobe not found in PATH. %s", getInstallationInstructions())
	}

	// Check for ffmpeg
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH. %s", getInstallationInstructions())
	}

	return nil
}

// ToolVersion returns the first line of `<tool> -version` output, which is
// where ffmpeg and ffprobe put their version banner.
func ToolVersion(tool string) (string, error) {
	output, err := exec.Command(tool, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s -version: %w", tool, err)
	}

	line, _, _ := strings.Cut(string(output), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s -version produced no output", tool)
	}
	return line, nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
