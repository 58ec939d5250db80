package tts

import (
	"fmt"
	"strings"
	"time"
)

// Rate and volume limits shared by the engine and the navigator.
const (
	MinRate   = -10
	MaxRate   = 10
	MinVolume = 0
	MaxVolume = 100
)

// Config contains all speech configuration options.
type Config struct {
	Engine   string `yaml:"engine" env:"LOSTVOICE_ENGINE" envDefault:"mock"`
	Language string `yaml:"language" env:"LOSTVOICE_LANGUAGE" envDefault:"en-US"`

	// Voice settings
	Voice     string `yaml:"voice" env:"LOSTVOICE_VOICE"`
	EchoVoice string `yaml:"echo_voice" env:"LOSTVOICE_ECHO_VOICE"`
	Rate      int    `yaml:"rate" env:"LOSTVOICE_RATE" envDefault:"0"`
	Volume    int    `yaml:"volume" env:"LOSTVOICE_VOLUME" envDefault:"100"`

	// Pronunciation settings
	Lexicon   string `yaml:"lexicon" env:"LOSTVOICE_LEXICON"`
	Shortcuts bool   `yaml:"shortcuts" env:"LOSTVOICE_SHORTCUTS" envDefault:"true"`

	// Echo settings
	EchoWords      bool `yaml:"echo_words" env:"LOSTVOICE_ECHO_WORDS" envDefault:"false"`
	EchoParagraphs bool `yaml:"echo_paragraphs" env:"LOSTVOICE_ECHO_PARAGRAPHS" envDefault:"false"`

	// Visual settings
	HighlightEnabled bool   `yaml:"highlight_enabled" env:"LOSTVOICE_HIGHLIGHT_ENABLED" envDefault:"true"`
	HighlightColor   string `yaml:"highlight_color" env:"LOSTVOICE_HIGHLIGHT_COLOR" envDefault:"yellow"`

	// Engine-specific configurations
	Mock MockConfig `yaml:"mock"`
}

// MockConfig contains settings for the built-in paced engine.
type MockConfig struct {
	WordsPerMinute int           `yaml:"words_per_minute" env:"LOSTVOICE_MOCK_WORDS_PER_MINUTE" envDefault:"180"`
	StartDelay     time.Duration `yaml:"start_delay" env:"LOSTVOICE_MOCK_START_DELAY" envDefault:"50ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:   "mock",
		Language: "en-US",

		Rate:   0,
		Volume: MaxVolume,

		Shortcuts: true,

		HighlightEnabled: true,
		HighlightColor:   "yellow",

		Mock: DefaultMockConfig(),
	}
}

// DefaultMockConfig returns default mock engine configuration.
func DefaultMockConfig() MockConfig {
	return MockConfig{
		WordsPerMinute: 180,
		StartDelay:     50 * time.Millisecond,
	}
}

// Validate checks if the configuration is valid. Engine and color names
// are normalized to lower case.
func (c *Config) Validate() error {
	validEngines := []string{"mock"}
	engineValid := false
	for _, e := range validEngines {
		if strings.EqualFold(c.Engine, e) {
			engineValid = true
			c.Engine = strings.ToLower(c.Engine)
			break
		}
	}
	if !engineValid {
		return fmt.Errorf("%w: engine %q must be one of %v", ErrInvalidConfig, c.Engine, validEngines)
	}

	if c.Language == "" {
		return fmt.Errorf("%w: language", ErrMissingConfig)
	}

	if c.Rate < MinRate || c.Rate > MaxRate {
		return fmt.Errorf("%w: rate must be between %d and %d, got %d", ErrInvalidConfig, MinRate, MaxRate, c.Rate)
	}

	if c.Volume < MinVolume || c.Volume > MaxVolume {
		return fmt.Errorf("%w: volume must be between %d and %d, got %d", ErrInvalidConfig, MinVolume, MaxVolume, c.Volume)
	}

	validColors := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white", "none"}
	colorValid := false
	for _, color := range validColors {
		if strings.EqualFold(c.HighlightColor, color) {
			colorValid = true
			c.HighlightColor = strings.ToLower(c.HighlightColor)
			break
		}
	}
	if !colorValid {
		return fmt.Errorf("%w: highlight color %q must be one of %v", ErrInvalidConfig, c.HighlightColor, validColors)
	}

	if c.Engine == "mock" {
		if err := c.Mock.Validate(); err != nil {
			return fmt.Errorf("mock config: %w", err)
		}
	}

	return nil
}

// Validate checks if the mock configuration is valid.
func (c *MockConfig) Validate() error {
	if c.WordsPerMinute < 50 || c.WordsPerMinute > 1000 {
		return fmt.Errorf("%w: words_per_minute must be between 50 and 1000, got %d", ErrInvalidConfig, c.WordsPerMinute)
	}
	if c.StartDelay < 0 {
		return fmt.Errorf("%w: start_delay cannot be negative, got %v", ErrInvalidConfig, c.StartDelay)
	}
	return nil
}
