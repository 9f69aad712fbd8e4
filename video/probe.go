package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata holds the ffprobe report for one media file.
type Metadata struct {
	DurationSecs float64
	BitRate      int64 // bits per second
	SizeBytes    int64
	Streams      []StreamInfo
}

// StreamInfo describes a single container stream.
type StreamInfo struct {
	CodecType          string
	CodecName          string
	Width              int
	Height             int
	DisplayAspectRatio string
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result. One call covers the format and stream entries the
// pipeline logs before and after conversion.
func Probe(ctx context.Context, path string) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-hide_banner", "-v", "error",
		"-show_entries", "format=duration,bit_rate,size",
		"-show_entries", "stream=codec_type,width,height,display_aspect_ratio,codec_name",
		"-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseProbeJSON(output)
}

// ParseProbeJSON converts raw ffprobe JSON output into Metadata.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*Metadata, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON: %w", err)
	}

	meta := &Metadata{
		DurationSecs: parseFloat(raw.Format.Duration),
		BitRate:      parseInt64(raw.Format.BitRate),
		SizeBytes:    parseInt64(raw.Format.Size),
	}
	for _, s := range raw.Streams {
		meta.Streams = append(meta.Streams, StreamInfo{
			CodecType:          s.CodecType,
			CodecName:          s.CodecName,
			Width:              s.Width,
			Height:             s.Height,
			DisplayAspectRatio: s.DisplayAspectRatio,
		})
	}
	return meta, nil
}

// --- ffprobe JSON wire types ---

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
	Size     string `json:"size"`
}

type probeStream struct {
	CodecType          string `json:"codec_type"`
	CodecName          string `json:"codec_name"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

// FormattedDuration renders the duration as HH:MM:SS.ss
func (m *Metadata) FormattedDuration() string {
	total := int(m.DurationSecs)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := m.DurationSecs - float64(hours*3600+minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, seconds)
}

// FormattedBitrate renders the overall bitrate in kb/s
func (m *Metadata) FormattedBitrate() string {
	return fmt.Sprintf("%.2f kb/s", float64(m.BitRate)/1000)
}

// FormattedSize renders the container size in MB
func (m *Metadata) FormattedSize() string {
	return fmt.Sprintf("%.2f MB", float64(m.SizeBytes)/(1024*1024))
}

// VideoHeight returns the height of the first video stream, or 0 when the
// file has none.
func (m *Metadata) VideoHeight() int {
	for _, s := range m.Streams {
		if s.CodecType == "video" {
			return s.Height
		}
	}
	return 0
}

// Report returns the human-readable metadata lines the pipeline writes to
// the run log under a phase tag.
func (m *Metadata) Report() []string {
	lines := []string{
		"Size: " + m.FormattedSize(),
		"Duration: " + m.FormattedDuration(),
		"Bitrate: " + m.FormattedBitrate(),
	}

	for _, s := range m.Streams {
		switch s.CodecType {
		case "video":
			if s.CodecName != "" {
				lines = append(lines, "Video Codec: "+s.CodecName)
			}
			lines = append(lines, fmt.Sprintf("Resolution: %dx%d", s.Width, s.Height))
			if s.DisplayAspectRatio != "" {
				lines = append(lines, "Display Aspect Ratio: "+s.DisplayAspectRatio)
			} else {
				lines = append(lines, "Display Aspect Ratio: Not available")
			}
		case "audio":
			lines = append(lines, "Audio: Present")
		}
	}
	return lines
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	return fi.Size(), nil
}
