package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgnsrekt/lostvoice/tts/navigate"
	"github.com/muesli/reflow/wordwrap"
)

var highlightColors = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("226"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
}

var caretStyle = lipgloss.NewStyle().Reverse(true)

// highlightStyle returns the style for the word being spoken. Unknown
// colors and "none" underline instead of coloring.
func highlightStyle(color string) lipgloss.Style {
	c, ok := highlightColors[strings.ToLower(color)]
	if !ok {
		return lipgloss.NewStyle().Underline(true).Bold(true)
	}
	return lipgloss.NewStyle().
		Background(c).
		Foreground(lipgloss.Color("0")).
		Bold(true)
}

// renderSpan styles content[start:end] and wraps the result to width.
// A width of zero disables wrapping.
func renderSpan(content string, start, end int, style lipgloss.Style, width int) string {
	start = clamp(start, 0, len(content))
	end = clamp(end, start, len(content))

	var b strings.Builder
	b.Grow(len(content) + 32)
	b.WriteString(content[:start])
	if end > start {
		b.WriteString(style.Render(content[start:end]))
	}
	b.WriteString(content[end:])

	return wrap(b.String(), width)
}

// renderCaret marks the rune at caret. At a line end or the end of the
// text a styled blank stands in for it.
func renderCaret(content string, caret, width int) string {
	caret = clamp(caret, 0, len(content))
	if caret == len(content) || content[caret] == '\n' {
		return wrap(content[:caret]+caretStyle.Render(" ")+content[caret:], width)
	}
	_, size := utf8.DecodeRuneInString(content[caret:])
	return renderSpan(content, caret, caret+size, caretStyle, width)
}

// lineOf returns the wrapped line that offset falls on. The word at offset
// is included so it wraps the way it does in the full text.
func lineOf(content string, offset, width int) int {
	offset = clamp(offset, 0, len(content))
	end := navigate.WordEnd(content, offset)
	return strings.Count(strings.TrimRight(wrap(content[:end], width), " "), "\n")
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
