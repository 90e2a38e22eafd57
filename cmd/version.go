package cmd

import (
	"github.com/kamal-hamza/emobridge/pkg/ui"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionTemplate renders --version output
func versionTemplate() string {
	return ui.StyleTitle.Render("emobridge") + " - image validation and emotion analysis\n\n" +
		ui.RenderKeyValue("Version", Version) + "\n" +
		ui.RenderKeyValue("Commit", GitCommit) + "\n" +
		ui.RenderKeyValue("Build Date", BuildDate) + "\n"
}
