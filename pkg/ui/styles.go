package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette using terminal colors for consistency
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"} // Red
	ColorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"} // Magenta/Purple
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"} // Yellow
	ColorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "4"} // Blue

	// Everything styled here is written to stderr, so color detection
	// follows stderr rather than stdout.
	renderer *lipgloss.Renderer

	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleTitle   lipgloss.Style

	// Status icons
	IconError   = "✘"
	IconWarning = "⚠"
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput rebuilds the styles for the writer they will be rendered to.
// Non-terminal writers get plain text.
func SetOutput(w io.Writer) {
	renderer = lipgloss.NewRenderer(w)

	StyleError = renderer.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = renderer.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleAccent = renderer.NewStyle().Foreground(ColorAccent)
	StyleTitle = renderer.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
}

// FormatError returns an error message with icon
func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

// FormatWarning returns a warning message with icon
func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
