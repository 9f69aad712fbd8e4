package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/mp4ify/logging"
	"github.com/lepinkainen/mp4ify/types"
	"github.com/lepinkainen/mp4ify/ui"
	"github.com/lepinkainen/mp4ify/utils"
	"github.com/lepinkainen/mp4ify/video"
)

// ConvertCmd batch-converts every video in the input directory to
// standardized MP4 (H.264/AAC, height capped). Files are processed one at
// a time; a single file's failure never aborts the batch.
type ConvertCmd struct {
	Input     string        `help:"Directory containing videos to convert" default:"convert_media" type:"path"`
	Output    string        `help:"Directory for converted MP4 files" default:"converted_media" type:"path"`
	LogDir    string        `help:"Directory for the run log" default:"logging" type:"path"`
	CRF       int           `help:"x264 Constant Rate Factor (0-51, lower=better)" default:"23"`
	Preset    string        `help:"x264 encoding preset" default:"medium" enum:"ultrafast,superfast,veryfast,faster,fast,medium,slow,slower,veryslow,placebo"`
	MaxHeight int           `help:"Maximum output height in pixels, downscale only" default:"720"`
	Timeout   time.Duration `help:"Per-file conversion timeout (0 = no timeout)" default:"0"`
	DryRun    bool          `help:"Show what would be converted without running ffmpeg"`
}

// convertStats tracks outcome counters across one run
type convertStats struct {
	Total       int
	Converted   int
	Skipped     int
	Failed      int
	Unprocessed int
}

// err translates the counters into the run's exit condition: skips alone
// are a clean run, any failure or an interrupted batch makes the exit
// status non-zero.
func (s *convertStats) err() error {
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", s.Failed, s.Total)
	}
	if s.Unprocessed > 0 {
		return fmt.Errorf("interrupted with %d of %d files unprocessed", s.Unprocessed, s.Total)
	}
	return nil
}

// options overlays the command's flags onto the default conversion
// settings so the encoder defaults live in one place.
func (cmd *ConvertCmd) options() *video.Options {
	options := video.DefaultOptions()
	options.CRF = cmd.CRF
	options.Preset = cmd.Preset
	options.MaxHeight = cmd.MaxHeight
	return options
}

func (cmd *ConvertCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("mp4ify %s", version)))

	// External tools missing at startup is fatal, before any file is touched.
	if err := utils.ValidateFFmpegDependencies(); err != nil {
		return err
	}

	if err := utils.EnsureDirectories(cmd.Input, cmd.Output, cmd.LogDir); err != nil {
		return err
	}

	log, err := logging.New(cmd.LogDir)
	if err != nil {
		return err
	}
	defer log.Close()

	batchID := newBatchID()
	log.Info("Begin processing conversion batch ID: %s", batchID)

	if utils.IsNetworkDrive(cmd.Input) {
		fmt.Println(ui.WarnStyle.Render("⚠️  Input directory is on a network mount, conversion may be slow"))
		log.Warn("Input directory %s is on a network mount", cmd.Input)
	}

	// SIGINT/SIGTERM stop the batch between files; the in-flight ffmpeg
	// process is killed through the same context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := video.DiscoverFiles(cmd.Input)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return err
	}
	if len(files) == 0 {
		log.Info("No files found in %s", cmd.Input)
		fmt.Println("🎯 No files to convert.")
		return nil
	}

	options := cmd.options()
	stats := &convertStats{Total: len(files)}

	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("🎬 Converting %d files to MP4 (H.264/AAC, max %dp):", len(files), cmd.MaxHeight)))
	if cmd.DryRun {
		fmt.Println(ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))
	}

	bar := progressbar.Default(int64(len(files)), "converting")

	for i, name := range files {
		if ctx.Err() != nil {
			stats.Unprocessed = len(files) - i
			log.Warn("Interrupted, %d files not processed", stats.Unprocessed)
			break
		}

		switch cmd.processFile(ctx, log, name, options) {
		case video.OutcomeDone:
			stats.Converted++
		case video.OutcomeSkipped:
			stats.Skipped++
		case video.OutcomeFailed:
			stats.Failed++
		}
		_ = bar.Add(1)
	}

	cmd.printSummary(stats)
	log.Info("Processing complete for batch ID %s: %d converted, %d skipped, %d failed",
		batchID, stats.Converted, stats.Skipped, stats.Failed)

	return stats.err()
}

// processFile drives one file through the per-file state machine:
// normalize → validate → probe(pre) → convert → probe(post). Each return
// is the file's terminal outcome; nothing here aborts the batch.
func (cmd *ConvertCmd) processFile(ctx context.Context, log *logging.Logger, name string, options *video.Options) video.Outcome {
	// Normalize first so every later log line and subprocess argument
	// carries the safe name.
	normalized, err := video.NormalizeFile(cmd.Input, name)
	if err != nil {
		log.Error("Cannot normalize %q: %v", name, err)
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: rename failed", name)))
		return video.OutcomeFailed
	}
	if normalized != name {
		log.Info("Renamed file: %q to %q", name, normalized)
	}
	path := filepath.Join(cmd.Input, normalized)

	if v := video.ValidateFile(path); !v.OK {
		log.Warn("Skipping %s: %s", normalized, v.Reason)
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⏭️  Skipped %s (%s)", normalized, v.Reason)))
		return video.OutcomeSkipped
	}

	hasVideo, err := video.HasVideoStream(ctx, path)
	if err != nil {
		// Input unreadable by ffprobe: skip rather than feed it to ffmpeg.
		log.Error("Cannot probe %s: %v", normalized, err)
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⏭️  Skipped %s (unreadable)", normalized)))
		return video.OutcomeSkipped
	}
	if !hasVideo {
		log.Warn("Skipping %s: no video stream", normalized)
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⏭️  Skipped %s (no video stream)", normalized)))
		return video.OutcomeSkipped
	}

	// Pre-conversion inspection. A probe hiccup at this point is the
	// tool's problem, not the file's: log it and convert anyway.
	if meta, err := video.Probe(ctx, path); err != nil {
		log.Error("Pre-conversion probe failed for %s: %v", normalized, err)
	} else {
		logReport(log, "pre", normalized, meta)
	}

	outputPath := video.OutputPath(cmd.Output, normalized)

	if cmd.DryRun {
		log.Info("[DRY] Would convert %s to %s", normalized, filepath.Base(outputPath))
		fmt.Printf("🔍 Would convert %s → %s\n", normalized, filepath.Base(outputPath))
		return video.OutcomeDone
	}

	log.Info("Start file conversion for file %s", normalized)

	convertCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		convertCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	result := video.ConvertToMP4(convertCtx, path, outputPath, options)
	if !result.Success() {
		log.Error("Error converting file %q: %v", normalized, result.Err)
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %s", normalized, result.Reason)))
		return video.OutcomeFailed
	}
	log.Info("Conversion complete for file: %s", normalized)

	// Post-conversion inspection. The conversion already succeeded, so a
	// probe failure here only costs the comparison data.
	if meta, err := video.Probe(ctx, result.OutputPath); err != nil {
		log.Error("Post-conversion probe failed for %s: %v", filepath.Base(result.OutputPath), err)
	} else {
		logReport(log, "post", filepath.Base(result.OutputPath), meta)
	}

	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", filepath.Base(result.OutputPath))))
	return video.OutcomeDone
}

// printSummary displays final statistics
func (cmd *ConvertCmd) printSummary(stats *convertStats) {
	fmt.Printf("\n%s\n", ui.HeaderStyle.Render("📊 Conversion Summary"))
	fmt.Printf("   Converted: %d files\n", stats.Converted)
	fmt.Printf("   Skipped: %d files\n", stats.Skipped)
	fmt.Printf("   Failed: %d files\n", stats.Failed)
	if stats.Unprocessed > 0 {
		fmt.Printf("   Unprocessed: %d files (interrupted)\n", stats.Unprocessed)
	}

	if stats.Failed == 0 && stats.Unprocessed == 0 {
		fmt.Printf("\n%s\n", ui.SuccessStyle.Render("🎉 Conversion complete!"))
	} else {
		fmt.Printf("\n%s\n", ui.ErrorStyle.Render("❌ Run did not complete cleanly, see the run log"))
	}
}

// logReport writes one probe report to the run log under a phase tag
// ("pre" or "post"), one line per metadata field.
func logReport(log *logging.Logger, phase, name string, meta *video.Metadata) {
	log.Info("[%s] File: %s", phase, name)
	for _, line := range meta.Report() {
		log.Info("[%s] %s", phase, line)
	}
}

// newBatchID returns a timestamped unique ID for one conversion run.
func newBatchID() string {
	return time.Now().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}
