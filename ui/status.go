package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/muesli/reflow/truncate"
)

var (
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// stateIcon returns an icon for the engine state.
func stateIcon(s tts.StateType) string {
	switch s {
	case tts.StateSpeaking:
		return "▶"
	case tts.StatePaused:
		return "⏸"
	default:
		return "■"
	}
}

// stateColor returns the color for the engine state.
func stateColor(s tts.StateType) lipgloss.Color {
	switch s {
	case tts.StateSpeaking:
		return lipgloss.Color("#00FF00")
	case tts.StatePaused:
		return lipgloss.Color("#FFFF00")
	default:
		return lipgloss.Color("#888888")
	}
}

// percent is how far through the document the reader is.
func (m model) percent() int {
	if len(m.content) == 0 {
		return 0
	}
	return m.focus() * 100 / len(m.content)
}

func (m model) statusView() string {
	state := m.engine.State()
	left := lipgloss.NewStyle().Foreground(stateColor(state)).Render(stateIcon(state) + " " + state.String())
	if m.cfg.Path != "" {
		left += statusBarStyle.Render("  " + filepath.Base(m.cfg.Path))
	}

	var right string
	if m.err != nil {
		right = errorStyle.Render("Error: " + m.err.Error())
	} else {
		parts := []string{
			fmt.Sprintf("rate %+d", m.engine.Rate()),
			fmt.Sprintf("vol %d", m.engine.Volume()),
		}
		if m.voiceName != "" {
			parts = append(parts, m.voiceName)
		}
		parts = append(parts, fmt.Sprintf("%d%%", m.percent()))
		right = statusBarStyle.Render(strings.Join(parts, " · "))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.StringWithTail(left+" "+right, uint(max(m.width, 0)), "…") //nolint:gosec
	}
	return left + strings.Repeat(" ", gap) + right
}
