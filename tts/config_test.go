package tts

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestDefaultConfig tests that default configuration is valid.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	if cfg.Engine != "mock" {
		t.Errorf("Default engine should be mock, got %s", cfg.Engine)
	}
	if cfg.Volume != MaxVolume {
		t.Errorf("Default volume = %d, want %d", cfg.Volume, MaxVolume)
	}
}

// TestConfigValidation tests configuration validation.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid engine",
			modify:  func(c *Config) { c.Engine = "sapi" },
			wantErr: true,
			errMsg:  "engine",
		},
		{
			name:    "rate too high",
			modify:  func(c *Config) { c.Rate = 11 },
			wantErr: true,
			errMsg:  "rate must be between",
		},
		{
			name:    "rate too low",
			modify:  func(c *Config) { c.Rate = -11 },
			wantErr: true,
			errMsg:  "rate must be between",
		},
		{
			name:    "rate at limits",
			modify:  func(c *Config) { c.Rate = -10 },
			wantErr: false,
		},
		{
			name:    "volume too high",
			modify:  func(c *Config) { c.Volume = 101 },
			wantErr: true,
			errMsg:  "volume must be between",
		},
		{
			name:    "volume too low",
			modify:  func(c *Config) { c.Volume = -1 },
			wantErr: true,
			errMsg:  "volume must be between",
		},
		{
			name:    "missing language",
			modify:  func(c *Config) { c.Language = "" },
			wantErr: true,
			errMsg:  "language",
		},
		{
			name:    "invalid highlight color",
			modify:  func(c *Config) { c.HighlightColor = "purple" },
			wantErr: true,
			errMsg:  "highlight color",
		},
		{
			name:    "case insensitive engine",
			modify:  func(c *Config) { c.Engine = "MOCK" },
			wantErr: false,
		},
		{
			name:    "case insensitive color",
			modify:  func(c *Config) { c.HighlightColor = "YELLOW" },
			wantErr: false,
		},
		{
			name:    "mock words per minute",
			modify:  func(c *Config) { c.Mock.WordsPerMinute = 10 },
			wantErr: true,
			errMsg:  "words_per_minute",
		},
		{
			name:    "mock negative delay",
			modify:  func(c *Config) { c.Mock.StartDelay = -time.Second },
			wantErr: true,
			errMsg:  "start_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				return
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.errMsg, err.Error())
			}
			if !errors.Is(err, ErrInvalidConfig) && !errors.Is(err, ErrMissingConfig) {
				t.Errorf("error %v should wrap a configuration sentinel", err)
			}
		})
	}
}

// TestValidateNormalizes tests that names are lower-cased.
func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "Mock"
	cfg.HighlightColor = "Cyan"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Engine != "mock" || cfg.HighlightColor != "cyan" {
		t.Errorf("got engine %q color %q", cfg.Engine, cfg.HighlightColor)
	}
}

// TestLoadConfig tests loading values from a Viper instance.
func TestLoadConfig(t *testing.T) {
	v := viper.New()
	v.Set("speech.voice", "Zira")
	v.Set("speech.echo_voice", "David")
	v.Set("speech.rate", -3)
	v.Set("speech.volume", 80)
	v.Set("speech.lexicon", "/tmp/rules.xml")
	v.Set("speech.shortcuts", false)
	v.Set("speech.echo_words", true)
	v.Set("speech.highlight_color", "green")
	v.Set("speech.mock.words_per_minute", 240)
	v.Set("speech.mock.start_delay", "5ms")

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Voice != "Zira" || cfg.EchoVoice != "David" {
		t.Errorf("voices = %q, %q", cfg.Voice, cfg.EchoVoice)
	}
	if cfg.Rate != -3 {
		t.Errorf("Rate = %v, want -3", cfg.Rate)
	}
	if cfg.Volume != 80 {
		t.Errorf("Volume = %v, want 80", cfg.Volume)
	}
	if cfg.Lexicon != "/tmp/rules.xml" {
		t.Errorf("Lexicon = %v", cfg.Lexicon)
	}
	if cfg.Shortcuts {
		t.Error("Shortcuts should be disabled")
	}
	if !cfg.EchoWords || cfg.EchoParagraphs {
		t.Errorf("echo = %v, %v", cfg.EchoWords, cfg.EchoParagraphs)
	}
	if cfg.HighlightColor != "green" {
		t.Errorf("HighlightColor = %v, want green", cfg.HighlightColor)
	}
	if cfg.Mock.WordsPerMinute != 240 {
		t.Errorf("Mock.WordsPerMinute = %v, want 240", cfg.Mock.WordsPerMinute)
	}
	if cfg.Mock.StartDelay != 5*time.Millisecond {
		t.Errorf("Mock.StartDelay = %v, want 5ms", cfg.Mock.StartDelay)
	}
}

// TestLoadConfigInvalid tests that invalid values are rejected.
func TestLoadConfigInvalid(t *testing.T) {
	v := viper.New()
	v.Set("speech.rate", 42)

	if _, err := LoadConfig(v); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidConfig", err)
	}
}

// TestSetDefaults tests that defaults are registered.
func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	if v.GetString("speech.engine") != "mock" {
		t.Errorf("speech.engine = %v, want mock", v.GetString("speech.engine"))
	}
	if v.GetInt("speech.volume") != MaxVolume {
		t.Errorf("speech.volume = %v", v.GetInt("speech.volume"))
	}
	if !v.GetBool("speech.shortcuts") {
		t.Error("speech.shortcuts should default to true")
	}

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() with defaults error = %v", err)
	}
	if cfg.Mock.StartDelay != DefaultMockConfig().StartDelay {
		t.Errorf("Mock.StartDelay = %v", cfg.Mock.StartDelay)
	}
}
