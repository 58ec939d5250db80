// Package ui provides the reader TUI. It shows a document with a caret,
// reads it aloud from the caret, a paragraph or the top, and highlights
// each word as it is spoken.
package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/document"
	"github.com/dgnsrekt/lostvoice/tts/navigate"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/dgnsrekt/lostvoice/tts/ssml"
)

const volumeStep = 10

// NewProgram returns a new Tea program reading content through engine.
// Engine callbacks are delivered to the program as messages.
func NewProgram(cfg Config, content string, engine tts.SpeechEngine, transformer *pronounce.Transformer) *tea.Program {
	log.Debug("Starting reader", "path", cfg.Path, "bytes", len(content), "rules", transformer.Rules())

	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(newModel(cfg, content, engine, transformer), opts...)
	tts.Forward(engine, p.Send)
	return p
}

// RulesMsg replaces the pronunciation rules, typically after the lexicon
// file changed on disk.
type RulesMsg struct {
	Transformer *pronounce.Transformer
}

// reader is the part of the model the navigator callbacks write to.
type reader struct {
	caret     int
	restore   int // caret to return to when reading stops
	highlight navigate.Highlight
	lit       bool
}

type model struct {
	cfg     Config
	content string
	blocks  []document.Block

	engine tts.SpeechEngine
	nav    *navigate.Navigator
	reader *reader

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	style    lipgloss.Style
	ready    bool
	width    int
	height   int

	voices    []tts.Voice
	voice     int
	voiceName string
	err       error
}

func newModel(cfg Config, content string, engine tts.SpeechEngine, transformer *pronounce.Transformer) model {
	r := &reader{}
	envelope := ssml.DefaultEnvelope
	if cfg.Language != "" {
		envelope = ssml.NewEnvelope(cfg.Language)
	}
	nav := navigate.New(engine, transformer,
		navigate.WithLogger(log.Default()),
		navigate.WithEnvelope(envelope),
		navigate.WithVoice(cfg.Voice),
		navigate.WithEchoVoice(cfg.EchoVoice),
		navigate.WithHighlighter(func(h navigate.Highlight) {
			r.highlight = h
			r.lit = true
		}),
		navigate.WithStopHandler(func() {
			r.lit = false
			r.caret = r.restore
		}),
	)

	return model{
		cfg:       cfg,
		content:   content,
		blocks:    document.Blocks(content),
		engine:    engine,
		nav:       nav,
		reader:    r,
		keys:      defaultKeyMap(),
		help:      help.New(),
		style:     highlightStyle(cfg.HighlightColor),
		voiceName: cfg.Voice,
	}
}

func (m model) Init() tea.Cmd {
	return tts.ListVoicesCmd(m.engine)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.refresh()
		m.follow()

	case tts.ProgressMsg:
		m.nav.HandleProgress(msg.Progress)
		m.refresh()
		m.follow()

	case tts.CompletedMsg:
		m.nav.HandleCompleted(msg.Completion)
		if msg.Err != nil {
			m.err = msg.Err
		}
		m.refresh()
		m.follow()

	case tts.VoicesMsg:
		m.voices = msg.Voices
		if m.voiceName == "" && len(m.voices) > 0 {
			m.voiceName = m.voices[0].Name
		}

	case RulesMsg:
		m.nav.SetTransformer(msg.Transformer)
		log.Info("Pronunciation rules reloaded", "rules", msg.Transformer.Rules())

	case tts.TTSErrorMsg:
		m.err = msg.Error
		log.Error("Speech error", "component", msg.Component, "action", msg.Action, "error", msg.Error)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		err    error
		action string
		r      = m.reader
		k      = m.keys
	)

	switch {
	case key.Matches(msg, k.Quit):
		m.nav.Stop()
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, k.SpeakFrom):
		start := r.caret
		if start >= len(m.content) {
			start = 0
		}
		action, err = "speak", m.speak(m.content[start:], start)

	case key.Matches(msg, k.SpeakBlock):
		if i := document.BlockAt(m.blocks, r.caret); i >= 0 {
			b := m.blocks[i]
			action, err = "speak", m.speak(b.Text(m.content), b.Start)
		}

	case key.Matches(msg, k.SpeakAll):
		action, err = "speak", m.speak(m.content, 0)

	case key.Matches(msg, k.Pause):
		action, err = "pause", m.nav.PauseOrResume()

	case key.Matches(msg, k.Stop):
		m.nav.Stop()
		m.err = nil

	case key.Matches(msg, k.SkipBack), key.Matches(msg, k.SkipBackShort):
		action, err = "skip_back", m.nav.SkipBack(key.Matches(msg, k.SkipBackShort))

	case key.Matches(msg, k.SkipAhead):
		action, err = "skip_ahead", m.nav.SkipAhead(false)

	case key.Matches(msg, k.SkipAheadShort):
		action, err = "skip_ahead", m.nav.SkipAhead(true)

	case key.Matches(msg, k.RateUp):
		action, err = "rate", m.nav.AdjustRate(1)

	case key.Matches(msg, k.RateDown):
		action, err = "rate", m.nav.AdjustRate(-1)

	case key.Matches(msg, k.VolumeUp):
		action, err = "volume", m.nav.SetVolume(m.engine.Volume()+volumeStep)

	case key.Matches(msg, k.VolumeDown):
		action, err = "volume", m.nav.SetVolume(m.engine.Volume()-volumeStep)

	case key.Matches(msg, k.NextVoice):
		if len(m.voices) > 0 {
			m.voice = (m.voice + 1) % len(m.voices)
			v := m.voices[m.voice]
			action, err = "select_voice", m.nav.SelectVoice(v.ID)
			if err == nil {
				m.voiceName = v.Name
			}
		}

	case key.Matches(msg, k.EchoWord):
		_, word := document.WordBefore(m.content, navigate.WordEnd(m.content, r.caret))
		action, err = "echo", m.nav.Echo(word, false)

	case key.Matches(msg, k.EchoParagraph):
		_, line := document.ParagraphBefore(m.content, lineEnd(m.content, r.caret))
		action, err = "echo", m.nav.Echo(line, true)

	case key.Matches(msg, k.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)

	case key.Matches(msg, k.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)

	default:
		// The caret stays put while reading.
		if !m.nav.Active() {
			action, err = "echo", m.moveCaret(msg)
		}
	}

	m.refresh()
	m.follow()

	if err != nil {
		return m, tts.ErrorCmd(err, "navigator", action)
	}
	return m, nil
}

func (m *model) speak(text string, base int) error {
	m.reader.restore = m.reader.caret
	m.err = nil
	return m.nav.Speak(text, base)
}

// moveCaret moves the caret for a navigation key, echoing what it lands on
// when echo is enabled.
func (m model) moveCaret(msg tea.KeyMsg) error {
	r, k := m.reader, m.keys

	switch {
	case key.Matches(msg, k.NextWord):
		next := navigate.NextWordStart(m.content, navigate.WordEnd(m.content, r.caret))
		if next >= len(m.content) {
			return nil
		}
		r.caret = next

	case key.Matches(msg, k.PrevWord):
		r.caret = navigate.PrevWordStart(m.content, r.caret)

	case key.Matches(msg, k.NextBlock):
		for _, b := range m.blocks {
			if b.Start > r.caret {
				r.caret = b.Start
				return m.echoBlock(b)
			}
		}
		return nil

	case key.Matches(msg, k.PrevBlock):
		for i := len(m.blocks) - 1; i >= 0; i-- {
			if m.blocks[i].Start < r.caret {
				r.caret = m.blocks[i].Start
				return m.echoBlock(m.blocks[i])
			}
		}
		return nil

	default:
		return nil
	}

	if !m.cfg.EchoWords {
		return nil
	}
	return m.nav.Echo(m.content[r.caret:navigate.WordEnd(m.content, r.caret)], false)
}

func (m model) echoBlock(b document.Block) error {
	if !m.cfg.EchoParagraphs {
		return nil
	}
	return m.nav.Echo(b.Text(m.content), true)
}

// lineEnd returns the offset of the newline ending the line at i, or the
// end of s.
func lineEnd(s string, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

func (m *model) resize() {
	if m.width == 0 {
		return
	}
	h := max(m.height-lipgloss.Height(m.footerView()), 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.ready = true
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m model) wrapWidth() int {
	w := m.width
	if m.cfg.Width > 0 && int(m.cfg.Width) < w {
		w = int(m.cfg.Width)
	}
	return w
}

// refresh re-renders the document into the viewport.
func (m *model) refresh() {
	if !m.ready {
		return
	}

	r := m.reader
	var content string
	switch {
	case r.lit && m.cfg.HighlightEnabled:
		h := r.highlight
		content = renderSpan(m.content, h.Start, h.Start+h.Length, m.style, m.wrapWidth())
	case m.nav.Active():
		content = wrap(m.content, m.wrapWidth())
	default:
		content = renderCaret(m.content, r.caret, m.wrapWidth())
	}
	m.viewport.SetContent(content)
}

// follow scrolls the viewport so the highlight or caret is visible.
func (m *model) follow() {
	if !m.ready {
		return
	}

	line := lineOf(m.content, m.focus(), m.wrapWidth())
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height/2)
	}
}

// focus is the offset the reader is looking at.
func (m model) focus() int {
	if m.reader.lit {
		return m.reader.highlight.Start
	}
	return m.reader.caret
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	return m.viewport.View() + "\n" + m.footerView()
}

func (m model) footerView() string {
	return m.statusView() + "\n" + m.help.View(m.keys)
}
