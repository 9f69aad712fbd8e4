package cmd

import (
	"fmt"

	"github.com/lepinkainen/mp4ify/types"
	"github.com/lepinkainen/mp4ify/ui"
	"github.com/lepinkainen/mp4ify/utils"
)

// CheckCmd verifies the external tools the pipeline depends on are
// installed and reports their versions.
type CheckCmd struct{}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	if err := utils.ValidateFFmpegDependencies(); err != nil {
		fmt.Println(ui.ErrorStyle.Render("❌ " + err.Error()))
		return err
	}

	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		version, err := utils.ToolVersion(tool)
		if err != nil {
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", tool, err)))
			return err
		}
		fmt.Println(ui.SuccessStyle.Render("✅ " + version))
	}

	return nil
}
