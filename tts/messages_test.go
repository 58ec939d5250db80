package tts_test

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/engines/mock"
)

// TestForward tests that engine callbacks arrive as messages.
func TestForward(t *testing.T) {
	engine := mock.New(mock.Manual())
	defer engine.Close()

	var msgs []tea.Msg
	tts.Forward(engine, func(msg tea.Msg) { msgs = append(msgs, msg) })

	id, err := engine.Speak("one two")
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	engine.Step()
	engine.Finish()
	engine.Deliver()

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}

	p, ok := msgs[0].(tts.ProgressMsg)
	if !ok {
		t.Fatalf("first message is %T, want ProgressMsg", msgs[0])
	}
	if p.Utterance != id || p.Offset != 0 || p.Count != 3 {
		t.Errorf("progress = %+v", p.Progress)
	}

	c, ok := msgs[1].(tts.CompletedMsg)
	if !ok {
		t.Fatalf("second message is %T, want CompletedMsg", msgs[1])
	}
	if c.Utterance != id || c.Canceled {
		t.Errorf("completion = %+v", c.Completion)
	}
}

// TestListVoicesCmd tests the voice listing command.
func TestListVoicesCmd(t *testing.T) {
	tests := []struct {
		name    string
		voices  []tts.Voice
		wantErr bool
	}{
		{"installed voices", mock.DefaultVoices, false},
		{"no voices", []tts.Voice{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := mock.New(mock.Manual(), mock.WithVoices(tt.voices...))
			defer engine.Close()

			msg := tts.ListVoicesCmd(engine)()
			switch m := msg.(type) {
			case tts.VoicesMsg:
				if tt.wantErr {
					t.Fatal("expected an error message")
				}
				if len(m.Voices) != len(tt.voices) {
					t.Errorf("got %d voices, want %d", len(m.Voices), len(tt.voices))
				}
			case tts.TTSErrorMsg:
				if !tt.wantErr {
					t.Fatalf("unexpected error: %v", m.Error)
				}
				if !errors.Is(m.Error, tts.ErrVoiceNotFound) || !m.Recoverable {
					t.Errorf("error message = %+v", m)
				}
			default:
				t.Fatalf("unexpected message type: %T", msg)
			}
		})
	}
}

// TestErrorCmd tests that errors are classified when wrapped in a message.
func TestErrorCmd(t *testing.T) {
	tests := []struct {
		err         error
		recoverable bool
	}{
		{tts.ErrSynthesisFailed, true},
		{tts.ErrEngineNotAvailable, false},
		{tts.NewTTSError(tts.ErrInvalidConfig, "config", "load"), false},
	}

	for _, tt := range tests {
		msg, ok := tts.ErrorCmd(tt.err, "navigator", "speak")().(tts.TTSErrorMsg)
		if !ok {
			t.Fatal("ErrorCmd should return a TTSErrorMsg")
		}
		if msg.Recoverable != tt.recoverable {
			t.Errorf("%v: recoverable = %v, want %v", tt.err, msg.Recoverable, tt.recoverable)
		}
		if msg.Component != "navigator" || msg.Action != "speak" {
			t.Errorf("component/action = %q/%q", msg.Component, msg.Action)
		}
	}
}
