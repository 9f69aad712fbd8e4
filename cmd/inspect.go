package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/mp4ify/types"
	"github.com/lepinkainen/mp4ify/ui"
	"github.com/lepinkainen/mp4ify/video"
)

// InspectCmd probes files with ffprobe and prints the same metadata
// report the conversion pipeline writes to the run log.
type InspectCmd struct {
	Files []string `arg:"" name:"files" help:"Video files to inspect" type:"existingfile"`
}

func (cmd *InspectCmd) Run(appCtx *types.AppContext) error {
	var failed int

	for _, file := range cmd.Files {
		if !video.IsVideoFile(file) {
			fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⚠️  %s is not a video file, skipping", file)))
			continue
		}

		meta, err := video.Probe(context.Background(), file)
		if err != nil {
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ Error probing %s: %v", file, err)))
			failed++
			continue
		}

		fmt.Println(ui.InfoStyle.Render("📹 " + file))
		for _, line := range meta.Report() {
			fmt.Printf("   %s\n", line)
		}
		fmt.Println()
	}

	if failed > 0 {
		return fmt.Errorf("%d files could not be inspected", failed)
	}
	return nil
}
