package tts

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads speech configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	return LoadConfig(viper.GetViper())
}

// LoadConfig loads speech configuration from the given Viper instance.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	if v.IsSet("speech.engine") {
		cfg.Engine = v.GetString("speech.engine")
	}
	if v.IsSet("speech.language") {
		cfg.Language = v.GetString("speech.language")
	}

	// Voice settings
	if v.IsSet("speech.voice") {
		cfg.Voice = v.GetString("speech.voice")
	}
	if v.IsSet("speech.echo_voice") {
		cfg.EchoVoice = v.GetString("speech.echo_voice")
	}
	if v.IsSet("speech.rate") {
		cfg.Rate = v.GetInt("speech.rate")
	}
	if v.IsSet("speech.volume") {
		cfg.Volume = v.GetInt("speech.volume")
	}

	// Pronunciation settings
	if v.IsSet("speech.lexicon") {
		cfg.Lexicon = v.GetString("speech.lexicon")
	}
	if v.IsSet("speech.shortcuts") {
		cfg.Shortcuts = v.GetBool("speech.shortcuts")
	}

	// Echo settings
	if v.IsSet("speech.echo_words") {
		cfg.EchoWords = v.GetBool("speech.echo_words")
	}
	if v.IsSet("speech.echo_paragraphs") {
		cfg.EchoParagraphs = v.GetBool("speech.echo_paragraphs")
	}

	// Visual settings
	if v.IsSet("speech.highlight_enabled") {
		cfg.HighlightEnabled = v.GetBool("speech.highlight_enabled")
	}
	if v.IsSet("speech.highlight_color") {
		cfg.HighlightColor = v.GetString("speech.highlight_color")
	}

	cfg.Mock = loadMockConfig(v)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid speech configuration: %w", err)
	}

	return cfg, nil
}

// loadMockConfig loads mock engine configuration from Viper.
func loadMockConfig(v *viper.Viper) MockConfig {
	cfg := DefaultMockConfig()

	if v.IsSet("speech.mock.words_per_minute") {
		cfg.WordsPerMinute = v.GetInt("speech.mock.words_per_minute")
	}
	if v.IsSet("speech.mock.start_delay") {
		if d, err := time.ParseDuration(v.GetString("speech.mock.start_delay")); err == nil {
			cfg.StartDelay = d
		}
	}

	return cfg
}

// SetDefaults sets default values in Viper for speech configuration.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("speech.engine", defaults.Engine)
	v.SetDefault("speech.language", defaults.Language)

	// Voice settings
	v.SetDefault("speech.rate", defaults.Rate)
	v.SetDefault("speech.volume", defaults.Volume)

	// Pronunciation settings
	v.SetDefault("speech.shortcuts", defaults.Shortcuts)

	// Echo settings
	v.SetDefault("speech.echo_words", defaults.EchoWords)
	v.SetDefault("speech.echo_paragraphs", defaults.EchoParagraphs)

	// Visual settings
	v.SetDefault("speech.highlight_enabled", defaults.HighlightEnabled)
	v.SetDefault("speech.highlight_color", defaults.HighlightColor)

	// Mock defaults
	v.SetDefault("speech.mock.words_per_minute", defaults.Mock.WordsPerMinute)
	v.SetDefault("speech.mock.start_delay", defaults.Mock.StartDelay.String())
}
