package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Document path, shown in the status bar
	Path string

	// Highlighting
	HighlightEnabled bool   `env:"LOSTVOICE_HIGHLIGHT_ENABLED" envDefault:"true"`
	HighlightColor   string `env:"LOSTVOICE_HIGHLIGHT_COLOR" envDefault:"yellow"`

	// Voices for reading and for word/paragraph echo
	Voice     string
	EchoVoice string
	Language  string

	// Speak the word or paragraph the caret lands on
	EchoWords      bool
	EchoParagraphs bool

	Width       uint
	EnableMouse bool
	AltScreen   bool `env:"LOSTVOICE_ALT_SCREEN" envDefault:"true"`
}
