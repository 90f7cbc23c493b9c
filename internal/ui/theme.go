package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + glyphs + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected                                lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	Glyphs          map[Glyph]string
	BarFull, BarGap string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),

		Glyphs: map[Glyph]string{
			GlyphChecked:   "☑",
			GlyphUnchecked: "☐",
			GlyphDelete:    "✖",
			GlyphAdd:       "+",
			GlyphOK:        "✔",
			GlyphPending:   "•",
		},
		BarFull: "█", BarGap: "░",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BorderColor = lipgloss.Color("13")
	t.Glyphs = map[Glyph]string{
		GlyphChecked:   "◼",
		GlyphUnchecked: "◻",
		GlyphDelete:    "✖",
		GlyphAdd:       "✚",
		GlyphOK:        "✔",
		GlyphPending:   "•",
	}
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:     "mono",
		Title:    plain,
		Muted:    plain,
		Accent:   plain,
		Success:  plain,
		Error:    plain,
		Pending:  plain,
		Done:     plain,
		Selected: plain,

		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.NoColor{},

		Glyphs: map[Glyph]string{
			GlyphChecked:   "[x]",
			GlyphUnchecked: "[ ]",
			GlyphDelete:    "x",
			GlyphAdd:       "+",
			GlyphOK:        "ok",
			GlyphPending:   "-",
		},
		BarFull: "#", BarGap: ".",
	}
}
