package engines_test

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/engines"
	"github.com/dgnsrekt/lostvoice/tts/engines/mock"
)

func TestNew(t *testing.T) {
	quiet := log.New(io.Discard)

	tests := []struct {
		name      string
		configure func(*tts.Config)
		wantVoice string
		wantRate  int
		wantErr   error
	}{
		{
			name:      "defaults",
			configure: func(*tts.Config) {},
			wantVoice: mock.DefaultVoices[0].ID,
		},
		{
			name: "rate and voice",
			configure: func(c *tts.Config) {
				c.Rate = 4
				c.Voice = "mock-voice-2"
			},
			wantVoice: "mock-voice-2",
			wantRate:  4,
		},
		{
			name:      "missing voice keeps default",
			configure: func(c *tts.Config) { c.Voice = "zzz" },
			wantVoice: mock.DefaultVoices[0].ID,
		},
		{
			name:      "unknown engine",
			configure: func(c *tts.Config) { c.Engine = "sapi" },
			wantErr:   tts.ErrEngineNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tts.DefaultConfig()
			tt.configure(&cfg)

			e, err := engines.New(cfg, quiet)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer e.Close()

			if got := e.Voice().ID; got != tt.wantVoice {
				t.Errorf("voice = %q, want %q", got, tt.wantVoice)
			}
			if e.Rate() != tt.wantRate {
				t.Errorf("rate = %d, want %d", e.Rate(), tt.wantRate)
			}
			if e.Volume() != cfg.Volume {
				t.Errorf("volume = %d, want %d", e.Volume(), cfg.Volume)
			}
			if e.State() != tts.StateReady {
				t.Errorf("state = %v, want ready", e.State())
			}
		})
	}
}

func TestNames(t *testing.T) {
	if !slices.Contains(engines.Names(), "mock") {
		t.Errorf("Names() = %v, want mock listed", engines.Names())
	}
}
