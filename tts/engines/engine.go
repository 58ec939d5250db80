// Package engines creates the speech engine named in the configuration.
package engines

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/engines/mock"
)

// Engine is a speech engine owned by the caller, which must Close it.
type Engine interface {
	tts.SpeechEngine

	// Voice returns the active voice.
	Voice() tts.Voice

	// Close cancels speech and releases the engine.
	Close()
}

type factory func(cfg tts.Config, logger *log.Logger) Engine

var registry = map[string]factory{
	"mock": newMock,
}

// Names returns the names accepted by New, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the engine named by cfg.Engine and applies the configured
// rate, volume and voice. A voice that is not installed is logged and the
// engine's default voice is kept.
func New(cfg tts.Config, logger *log.Logger) (Engine, error) {
	if logger == nil {
		logger = log.Default()
	}

	create, ok := registry[cfg.Engine]
	if !ok {
		return nil, tts.NewTTSError(fmt.Errorf("%w: %q", tts.ErrEngineNotAvailable, cfg.Engine), "engines", "create")
	}

	e := create(cfg, logger)
	e.SetRate(cfg.Rate)
	e.SetVolume(cfg.Volume)
	if cfg.Voice != "" {
		if err := e.SelectVoice(cfg.Voice); err != nil {
			logger.Warn("Voice not available, using default", "voice", cfg.Voice, "error", err)
		}
	}

	logger.Debug("Created speech engine", "engine", cfg.Engine, "voice", e.Voice().Name)
	return e, nil
}

func newMock(cfg tts.Config, logger *log.Logger) Engine {
	return mock.New(
		mock.WithWordsPerMinute(cfg.Mock.WordsPerMinute),
		mock.WithStartDelay(cfg.Mock.StartDelay),
		mock.WithLogger(logger),
	)
}
