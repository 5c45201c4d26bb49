// Package style holds the colors and glyphs shared by the strata CLI and its
// log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent  = lipgloss.Color("#0EA5E9")
	Muted   = lipgloss.Color("#64748B")
	Ok      = lipgloss.Color("#16A34A")
	Fail    = lipgloss.Color("#DC2626")
	Caution = lipgloss.Color("#D97706")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "•"
	Clip    = "◆"
)

// Label returns the style of left column keys drawn by r.
func Label(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Accent).Bold(true)
}

// Dim returns the style of secondary detail drawn by r.
func Dim(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Muted)
}
