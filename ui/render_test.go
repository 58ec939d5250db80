package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLineOf(t *testing.T) {
	const s = "aaaa bbbb cccc dddd"

	tests := []struct {
		offset int
		width  int
		want   int
	}{
		{0, 10, 0},
		{5, 10, 0},
		{10, 10, 1},
		{15, 10, 1},
		{len(s), 10, 1},
		{15, 0, 0},
	}

	for _, tt := range tests {
		if got := lineOf(s, tt.offset, tt.width); got != tt.want {
			t.Errorf("lineOf(%d, width %d) = %d, want %d", tt.offset, tt.width, got, tt.want)
		}
	}
}

func TestLineOfEmptyLine(t *testing.T) {
	const s = "one\n\ntwo"
	if got := lineOf(s, 4, 80); got != 1 {
		t.Errorf("lineOf(empty line) = %d, want 1", got)
	}
	if got := lineOf(s, 5, 80); got != 2 {
		t.Errorf("lineOf(two) = %d, want 2", got)
	}
}

func TestRenderCaret(t *testing.T) {
	tests := []struct {
		name  string
		caret int
		want  string
	}{
		{"inside text", 1, "abc\ndef"},
		{"before newline", 3, "abc \ndef"},
		{"end of text", 7, "abc\ndef "},
		{"past end", 20, "abc\ndef "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCaret("abc\ndef", tt.caret, 0); got != tt.want {
				t.Errorf("renderCaret = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSpanClamps(t *testing.T) {
	plain := lipgloss.NewStyle()
	tests := []struct {
		start, end int
	}{
		{-3, 2},
		{2, 100},
		{5, 1},
	}
	for _, tt := range tests {
		if got := renderSpan("hello", tt.start, tt.end, plain, 0); got != "hello" {
			t.Errorf("renderSpan(%d, %d) = %q", tt.start, tt.end, got)
		}
	}
}

func TestHighlightStyle(t *testing.T) {
	if !highlightStyle("none").GetUnderline() {
		t.Error("none should underline")
	}
	if !highlightStyle("unknown").GetUnderline() {
		t.Error("unknown colors should underline")
	}
	s := highlightStyle("Yellow")
	if s.GetUnderline() {
		t.Error("yellow should not underline")
	}
	if s.GetBackground() != highlightColors["yellow"] {
		t.Errorf("background = %v", s.GetBackground())
	}
}
