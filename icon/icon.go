// Package icon provides symbols for CLI feedback in several variants.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/style"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every accepted value of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Progress
	Queue
	Link
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
	color   lipgloss.Color
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "■", color: style.Green},
	Fail:     {emoji: "💥", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "■", color: style.Red},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "■", color: style.Yellow},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(￣▽￣)ノ", squares: "□", color: style.Blue},
	Queue:    {emoji: "📥", nerd: "", plain: ">", kaomoji: "(っ˘ω˘ς)", squares: "▣", color: style.Purple},
	Link:     {emoji: "🔗", nerd: "", plain: "@", kaomoji: "(°ロ°)☝", squares: "▢", color: style.Cyan},
}

func (d *iconDef) Get() string {
	var s string
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		s = d.nerd
	case plain:
		s = d.plain
	case kaomoji:
		s = d.kaomoji
	case squares:
		s = d.squares
	default:
		return ""
	}
	return style.Fg(d.color)(s)
}

// Get returns the symbol for i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
