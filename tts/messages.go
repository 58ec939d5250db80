package tts

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Messages for Bubble Tea communication between the speech engine and UI.

// ProgressMsg carries an engine word progress report.
type ProgressMsg struct {
	Progress
}

// CompletedMsg carries an engine completion report.
type CompletedMsg struct {
	Completion
}

// TTSErrorMsg indicates an error occurred in the speech system.
type TTSErrorMsg struct {
	Error       error
	Recoverable bool
	Component   string // Which component had the error (engine, navigator, lexicon)
	Action      string // What action was being performed
}

// VoicesMsg lists the installed voices.
type VoicesMsg struct {
	Voices []Voice
}

// Forward registers engine callbacks that deliver progress and completion
// reports as messages through send, typically tea.Program.Send. This moves
// them off the engine goroutine and into the Bubble Tea event loop.
func Forward(engine SpeechEngine, send func(tea.Msg)) {
	engine.OnProgress(func(p Progress) {
		send(ProgressMsg{p})
	})
	engine.OnCompleted(func(c Completion) {
		send(CompletedMsg{c})
	})
}

// Commands for async speech operations.

// ListVoicesCmd creates a command that reports the installed voices.
func ListVoicesCmd(engine SpeechEngine) tea.Cmd {
	return func() tea.Msg {
		voices := engine.Voices()
		if len(voices) == 0 {
			return TTSErrorMsg{
				Error:       ErrVoiceNotFound,
				Recoverable: true,
				Component:   "engine",
				Action:      "list_voices",
			}
		}
		return VoicesMsg{Voices: voices}
	}
}

// ErrorCmd wraps err in a TTSErrorMsg.
func ErrorCmd(err error, component, action string) tea.Cmd {
	return func() tea.Msg {
		return TTSErrorMsg{
			Error:       err,
			Recoverable: IsRecoverableError(err),
			Component:   component,
			Action:      action,
		}
	}
}
