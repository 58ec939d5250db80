package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SpeakFrom  key.Binding
	SpeakBlock key.Binding
	SpeakAll   key.Binding
	Pause      key.Binding
	Stop       key.Binding

	SkipBack       key.Binding
	SkipAhead      key.Binding
	SkipBackShort  key.Binding
	SkipAheadShort key.Binding

	RateUp     key.Binding
	RateDown   key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	NextVoice  key.Binding

	NextWord  key.Binding
	PrevWord  key.Binding
	NextBlock key.Binding
	PrevBlock key.Binding
	PageDown  key.Binding
	PageUp    key.Binding

	EchoWord      key.Binding
	EchoParagraph key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SpeakFrom:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read from caret")),
		SpeakBlock: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "read paragraph")),
		SpeakAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "read all")),
		Pause:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause/resume")),
		Stop:       key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "stop")),

		SkipBack:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "skip back")),
		SkipAhead:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "skip ahead")),
		SkipBackShort:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "skip back")),
		SkipAheadShort: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "short skip ahead")),

		RateUp:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "faster")),
		RateDown:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "slower")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		VolumeDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "quieter")),
		NextVoice:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next voice")),

		NextWord:  key.NewBinding(key.WithKeys("l", "w"), key.WithHelp("l", "next word")),
		PrevWord:  key.NewBinding(key.WithKeys("h", "b"), key.WithHelp("h", "previous word")),
		NextBlock: key.NewBinding(key.WithKeys("j", "tab"), key.WithHelp("j", "next paragraph")),
		PrevBlock: key.NewBinding(key.WithKeys("k", "shift+tab"), key.WithHelp("k", "previous paragraph")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),

		EchoWord:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "say word")),
		EchoParagraph: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "say line")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SpeakFrom, k.Pause, k.Stop, k.SkipBack, k.SkipAhead, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SpeakFrom, k.SpeakBlock, k.SpeakAll, k.Pause, k.Stop},
		{k.SkipBack, k.SkipAhead, k.SkipBackShort, k.SkipAheadShort},
		{k.RateUp, k.RateDown, k.VolumeUp, k.VolumeDown, k.NextVoice},
		{k.NextWord, k.PrevWord, k.NextBlock, k.PrevBlock, k.PageDown, k.PageUp},
		{k.EchoWord, k.EchoParagraph, k.Help, k.Quit},
	}
}
