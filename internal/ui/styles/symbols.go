package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Status markers
const (
	CheckMark = "✓"
	CrossMark = "✗"
	Bullet    = "•"
	Arrow     = "→"
)

// Done renders a success line prefixed with a check mark.
func Done(msg string) string {
	return SuccessStyle.Render(CheckMark) + " " + msg
}

// Failed renders an error line prefixed with "Error:".
func Failed(msg string) string {
	return ErrorStyle.Render("Error:") + " " + msg
}

// Note renders a de-emphasized status line.
func Note(msg string) string {
	return MutedStyle.Render(msg)
}

// Installed renders the installed marker used in item lists.
func Installed(installed bool) string {
	if installed {
		return SuccessStyle.Render(CheckMark)
	}
	return ""
}

// Link renders text as an OSC 8 hyperlink to url.
// Returns the plain styled text if url is empty.
func Link(text, url string, style lipgloss.Style) string {
	if url == "" {
		return style.Render(text)
	}
	return ansi.SetHyperlink(url) + style.Underline(true).Render(text) + ansi.ResetHyperlink()
}
