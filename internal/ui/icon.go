package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Glyph names an icon, independent of the theme drawing it.
type Glyph string

const (
	GlyphChecked   Glyph = "check-box"
	GlyphUnchecked Glyph = "check-box-outline-blank"
	GlyphDelete    Glyph = "delete"
	GlyphAdd       Glyph = "add"
	GlyphOK        Glyph = "done"
	GlyphPending   Glyph = "pending"
)

// Icon renders a named glyph from the active theme, padded to size cells
// and tinted with color. Unknown glyphs render as "?".
func Icon(name Glyph, size int, color lipgloss.TerminalColor) string {
	g, ok := current.Glyphs[name]
	if !ok {
		g = "?"
	}
	st := lipgloss.NewStyle()
	if color != nil {
		st = st.Foreground(color)
	}
	if size > lipgloss.Width(g) {
		st = st.Width(size)
	}
	return st.Render(g)
}

// Checkbox picks the checked or unchecked glyph.
func Checkbox(checked bool) string {
	if checked {
		return current.Success.Render(Icon(GlyphChecked, 0, nil))
	}
	return current.Muted.Render(Icon(GlyphUnchecked, 0, nil))
}

// OK prints a success line to w.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.Glyphs[GlyphOK]+" "+msg))
}

// Fail prints an error line to w.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.Glyphs[GlyphDelete]+" "+msg))
}
