// Package style renders CLI output with lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shikisync/shikisync/track"
)

// ANSI palette, so output follows the terminal theme.
var (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Purple = lipgloss.Color("5")
	Cyan   = lipgloss.Color("6")
	Gray   = lipgloss.Color("8")
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer with the given foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint     = func(s string) string { return New().Faint(true).Render(s) }
	Bold      = func(s string) string { return New().Bold(true).Render(s) }
	Italic    = func(s string) string { return New().Italic(true).Render(s) }
	Underline = func(s string) string { return New().Underline(true).Render(s) }
)

// Tag renders s as a padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(fg).Background(bg).Padding(0, 1).Render(s) }
}

// Title is the banner used for command headings.
var Title = Tag(lipgloss.Color("230"), lipgloss.Color("62"))

// ErrorTitle is the banner used for fatal errors.
var ErrorTitle = Tag(lipgloss.Color("230"), Red)

// Status colors a reading status by how active it is.
func Status(s track.Status) string {
	var c lipgloss.Color
	switch s {
	case track.Reading, track.Rereading:
		c = Green
	case track.Completed:
		c = Blue
	case track.OnHold, track.PlanToRead:
		c = Yellow
	case track.Dropped:
		c = Red
	default:
		c = Gray
	}
	return Fg(c)(s.String())
}
