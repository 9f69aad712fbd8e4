package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/mp4ify/cmd"
	"github.com/lepinkainen/mp4ify/types"
)

var Version = "dev"

type CLI struct {
	Convert cmd.ConvertCmd `cmd:"" default:"1" help:"Convert a folder of videos to standardized MP4 (H.264/AAC, 720p cap)"`
	Inspect cmd.InspectCmd `cmd:"" help:"Show media metadata for video files"`
	Check   cmd.CheckCmd   `cmd:"" help:"Verify ffmpeg and ffprobe are installed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mp4ify"),
		kong.Description("Batch video to MP4 converter"),
	)
	err := ctx.Run(&types.AppContext{Version: Version})
	ctx.FatalIfErrorf(err)
}
