package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Options holds configuration for the ffmpeg conversion step
type Options struct {
	CRF          int    // Constant Rate Factor (0-51, 23 is default)
	Preset       string // x264 preset (ultrafast ... placebo)
	MaxHeight    int    // Output height cap; smaller sources are never upscaled
	AudioQuality int    // AAC -q:a value
	FFmpegBin    string // ffmpeg binary, overridable for testing
}

// DefaultOptions returns the standard target settings: H.264 at CRF 23,
// AAC audio, height capped at 720.
func DefaultOptions() *Options {
	return &Options{
		CRF:          23,
		Preset:       "medium",
		MaxHeight:    720,
		AudioQuality: 100,
		FFmpegBin:    "ffmpeg",
	}
}

// Result holds the outcome of a single conversion
type Result struct {
	InputPath  string
	OutputPath string
	OutputSize int64
	Reason     string // short failure label for logs ("timeout", "no output produced", ...)
	Err        error
}

// Success reports whether the conversion produced a usable output file.
func (r *Result) Success() bool {
	return r.Err == nil
}

// BuildArgs returns the ffmpeg argument list for converting src to dst.
// The scale filter uses min(MaxHeight, ih) so videos already at or below
// the cap keep their resolution; -2 keeps the width divisible by two for
// yuv420p.
func BuildArgs(src, dst string, options *Options) []string {
	scale := fmt.Sprintf("scale=-2:'min(%d,ih)'", options.MaxHeight)
	return []string{
		"-hide_banner",
		"-y",
		"-i", src,
		"-c:v", "libx264",
		"-preset", options.Preset,
		"-crf", strconv.Itoa(options.CRF),
		"-vf", "format=yuv420p," + scale,
		"-c:a", "aac",
		"-q:a", strconv.Itoa(options.AudioQuality),
		"-movflags", "+faststart",
		dst,
	}
}

// ConvertToMP4 transcodes src to dst with the fixed MP4 target settings,
// blocking until ffmpeg exits or ctx expires. A zero exit status alone is
// not treated as success: the output must exist and be non-empty. On any
// failure the partial output file is removed so it can never be mistaken
// for a finished conversion.
func ConvertToMP4(ctx context.Context, src, dst string, options *Options) *Result {
	result := &Result{InputPath: src, OutputPath: dst}

	cmd := exec.CommandContext(ctx, options.FFmpegBin, BuildArgs(src, dst, options)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		removePartialOutput(dst)
		result.Reason = "timeout"
		result.Err = fmt.Errorf("conversion timed out: %w", ctx.Err())
		return result
	case ctx.Err() != nil:
		removePartialOutput(dst)
		result.Reason = "interrupted"
		result.Err = fmt.Errorf("conversion interrupted: %w", ctx.Err())
		return result
	case runErr != nil:
		removePartialOutput(dst)
		result.Reason = "ffmpeg failed"
		result.Err = fmt.Errorf("ffmpeg failed: %w\n%s", runErr, lastStderrLines(stderr.String(), 5))
		return result
	}

	size, err := GetFileSize(dst)
	if err != nil || size == 0 {
		removePartialOutput(dst)
		result.Reason = "no output produced"
		result.Err = fmt.Errorf("ffmpeg exited cleanly but produced no usable output for %q", src)
		return result
	}

	result.OutputSize = size
	return result
}

// removePartialOutput deletes a possibly half-written output file.
func removePartialOutput(dst string) {
	_ = os.Remove(dst)
}

// lastStderrLines trims captured ffmpeg stderr to the last n lines, which
// is where ffmpeg puts the actual failure reason.
func lastStderrLines(stderr string, n int) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return "no ffmpeg output captured"
	}
	lines := strings.Split(stderr, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
