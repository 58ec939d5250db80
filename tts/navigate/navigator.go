// Package navigate drives a speech engine over transformed text: it turns
// engine progress into editor highlights and implements restart, skip back
// and skip ahead in written-text coordinates.
//
// A Navigator is not safe for concurrent use. Engine callbacks must be
// delivered to HandleProgress and HandleCompleted on the goroutine that
// calls every other method.
package navigate

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	"github.com/dgnsrekt/lostvoice/tts/pronounce"
	"github.com/dgnsrekt/lostvoice/tts/ssml"
)

// Skip distances, in seconds of speech at the current rate.
const (
	skipBackSeconds       = 8.0
	skipAheadSeconds      = 12.0
	skipAheadShortSeconds = 3.0
)

// Highlight is a selection in editor coordinates.
type Highlight struct {
	Start  int
	Length int
}

// CharsPerSecond approximates how many characters the engine speaks per
// second at rate. Punctuation pauses are not accounted for.
func CharsPerSecond(rate int) float64 {
	return math.Pow(2, float64(rate+11)*0.15) * 4
}

// skipBudget is the number of written characters covering seconds of
// speech at rate, rounded half to even.
func skipBudget(rate int, seconds float64) int {
	return int(math.RoundToEven(CharsPerSecond(rate) * seconds))
}

// Highlighter receives highlights as speech progresses.
type Highlighter func(Highlight)

// Navigator plays transformed text through a speech engine.
type Navigator struct {
	engine      tts.SpeechEngine
	transformer *pronounce.Transformer
	envelope    ssml.Envelope
	logger      *log.Logger

	onHighlight Highlighter
	onStop      func()

	voice     string
	echoVoice string

	utt            *pronounce.Utterance
	cursor         pronounce.Cursor
	base           int
	active         bool
	current        tts.Utterance
	echo           tts.Utterance
	restartPending bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// WithEnvelope sets the SSML envelope wrapped around every payload.
func WithEnvelope(e ssml.Envelope) Option {
	return func(n *Navigator) { n.envelope = e }
}

// WithHighlighter sets the function receiving highlights.
func WithHighlighter(fn Highlighter) Option {
	return func(n *Navigator) { n.onHighlight = fn }
}

// WithStopHandler sets the function called when a highlighted session ends,
// so the editor can restore its caret and selection.
func WithStopHandler(fn func()) Option {
	return func(n *Navigator) { n.onStop = fn }
}

// WithVoice sets the voice for highlighted sessions.
func WithVoice(name string) Option {
	return func(n *Navigator) { n.voice = name }
}

// WithEchoVoice sets the voice for word and paragraph echo.
func WithEchoVoice(name string) Option {
	return func(n *Navigator) { n.echoVoice = name }
}

// New creates a Navigator. The caller wires the engine callbacks to
// HandleProgress and HandleCompleted.
func New(engine tts.SpeechEngine, transformer *pronounce.Transformer, opts ...Option) *Navigator {
	n := &Navigator{
		engine:      engine,
		transformer: transformer,
		envelope:    ssml.DefaultEnvelope,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Speak starts a highlighted session over written. base is the editor
// offset of written's first byte; highlights are shifted by it.
func (n *Navigator) Speak(written string, base int) error {
	if written == "" {
		return tts.NewTTSError(tts.ErrNothingToSpeak, "navigator", "speak").WithSeverity(tts.SeverityWarning)
	}

	n.engine.CancelAll()
	n.selectVoice(n.voice)

	n.utt = n.transformer.Transform(written)
	n.cursor.Reset()
	n.base = base
	n.active = true

	id, err := n.engine.Speak(n.envelope.Wrap(n.utt.Spoken))
	if err != nil {
		n.stop()
		return tts.NewTTSError(err, "navigator", "speak")
	}
	n.current = id

	n.logger.Debug("Speaking", "utterance", id, "bytes", len(written), "conflicts", len(n.utt.Conflicts))
	return nil
}

// Echo speaks written once without highlighting, as when the user finishes
// typing a word or paragraph. A word echo is dropped if the engine is busy;
// a paragraph echo interrupts whatever is playing. Echo does nothing during
// a highlighted session.
func (n *Navigator) Echo(written string, paragraph bool) error {
	if n.active || written == "" {
		return nil
	}
	if !paragraph && n.engine.State() != tts.StateReady {
		return nil
	}

	n.engine.CancelAll()
	n.selectVoice(n.echoVoice)

	u := n.transformer.Transform(written)
	id, err := n.engine.Speak(n.envelope.Wrap(u.Spoken))
	if err != nil {
		return tts.NewTTSError(err, "navigator", "echo")
	}
	n.echo = id
	return nil
}

// PauseOrResume toggles between speaking and paused.
func (n *Navigator) PauseOrResume() error {
	switch n.engine.State() {
	case tts.StateSpeaking:
		return n.engine.Pause()
	case tts.StatePaused:
		return n.engine.Resume()
	default:
		return nil
	}
}

// Stop cancels all speech and ends the session.
func (n *Navigator) Stop() {
	n.engine.CancelAll()
	n.stop()
}

// Restart resumes speech at the written offset, switching to voice first
// when it is not empty. If speech was paused it is paused again at the new
// position with the word there highlighted. An offset past the end of the
// text stops speech. Without an active session Restart does nothing.
func (n *Navigator) Restart(offset int, voice string) error {
	if !n.active || n.utt == nil {
		return nil
	}
	if offset >= len(n.utt.Written) {
		n.Stop()
		return nil
	}

	written := n.utt.Written
	offset = max(offset, 0)
	if !spokenAt(written, offset) {
		offset = NextWordStart(written, offset)
		if offset >= len(written) {
			n.Stop()
			return nil
		}
	}

	prev := n.engine.State()
	if prev != tts.StateReady {
		// The canceled utterance still reports completion; swallow it.
		n.restartPending = true
	}
	n.engine.CancelAll()
	if voice != "" {
		n.voice = voice
		n.selectVoice(voice)
	}

	offset, spoken, index := n.restartPoint(offset)
	n.cursor = pronounce.Cursor{
		Index:          index,
		WrittenRestart: offset,
		SpokenRestart:  spoken,
	}

	id, err := n.engine.Speak(n.envelope.Wrap(n.utt.Spoken[spoken:]))
	if err != nil {
		n.stop()
		return tts.NewTTSError(err, "navigator", "restart").WithContext("offset", offset)
	}
	n.current = id

	if prev == tts.StatePaused {
		if err := n.engine.Pause(); err != nil {
			n.logger.Warn("Could not pause restarted speech", "error", err)
		}
		n.emit(offset, WordEnd(written, offset)-offset)
	}

	n.cursor.WrittenPosition = offset
	n.logger.Debug("Restarted", "utterance", id, "written", offset, "spoken", spoken)
	return nil
}

// restartPoint maps a written offset to the spoken offset speech restarts
// from. Substituted words restart from their beginning, and phoneme words
// include their opening tag so the payload stays well formed.
func (n *Navigator) restartPoint(offset int) (written, spoken, index int) {
	m := n.utt.Map
	spoken, index = m.WrittenToSpoken(offset)
	if m.Len() <= 1 {
		return offset, spoken, index
	}

	e := m.Entry(index)
	switch e.Kind {
	case pronounce.Spelling:
		return e.WrittenStart, e.SpokenStart, index
	case pronounce.Phoneme:
		if index > 0 && m.Entry(index-1).Kind == pronounce.PhonemeOverhead {
			return e.WrittenStart, m.Entry(index - 1).SpokenStart, index - 1
		}
		return e.WrittenStart, e.SpokenStart, index
	}
	return offset, spoken, index
}

// SkipBack restarts about eight seconds of speech earlier, and always at
// least two words back. short is accepted for symmetry with SkipAhead but
// does not change the distance.
func (n *Navigator) SkipBack(short bool) error {
	if !n.active || n.utt == nil || n.utt.Written == "" {
		return nil
	}
	written := n.utt.Written

	start := n.cursor.WrittenPosition
	pos := start
	if pos >= len(written) {
		pos = prevRune(written, len(written))
	}
	budget := skipBudget(n.engine.Rate(), skipBackSeconds)

	pos = beforeWordStart(written, pos)
	pos = lastWordEnd(written, pos)
	pos = beforeWordStart(written, pos)
	pos = lastWordEnd(written, pos)
	pos = beforeWordStart(written, pos)

	for pos > 0 && start-pos < budget {
		pos = lastWordEnd(written, pos)
		pos = beforeWordStart(written, pos)
	}
	pos = NextWordStart(written, pos)

	n.logger.Debug("Skip back", "from", start, "to", pos, "budget", budget, "short", short)
	return n.Restart(pos, "")
}

// SkipAhead restarts at the first sentence start at least twelve seconds
// (three if short) of speech ahead. Skipping past the end stops speech.
func (n *Navigator) SkipAhead(short bool) error {
	if !n.active || n.utt == nil {
		return nil
	}
	written := n.utt.Written

	seconds := skipAheadSeconds
	if short {
		seconds = skipAheadShortSeconds
	}
	budget := skipBudget(n.engine.Rate(), seconds)

	start := n.cursor.WrittenPosition
	pos := start
	for pos < len(written) && pos-start < budget {
		pos = SentenceEnd(written, pos)
		pos = NextWordStart(written, pos)
	}

	n.logger.Debug("Skip ahead", "from", start, "to", pos, "budget", budget)
	return n.Restart(pos, "")
}

// SetRate sets the speech rate, clamped to [-10, 10], and restarts an
// active session at the current position so the change is heard.
func (n *Navigator) SetRate(rate int) error {
	n.engine.SetRate(min(max(rate, tts.MinRate), tts.MaxRate))
	return n.restartHere()
}

// AdjustRate changes the rate by delta.
func (n *Navigator) AdjustRate(delta int) error {
	return n.SetRate(n.engine.Rate() + delta)
}

// SetVolume sets the volume, clamped to [0, 100], and restarts an active
// session at the current position.
func (n *Navigator) SetVolume(volume int) error {
	n.engine.SetVolume(min(max(volume, tts.MinVolume), tts.MaxVolume))
	return n.restartHere()
}

// SelectVoice switches the session voice. An active session restarts at
// the current position with the new voice.
func (n *Navigator) SelectVoice(name string) error {
	if n.active {
		return n.Restart(n.cursor.WrittenPosition, name)
	}
	if err := n.engine.SelectVoice(name); err != nil {
		return tts.NewTTSError(err, "navigator", "select_voice").WithSeverity(tts.SeverityWarning)
	}
	n.voice = name
	return nil
}

func (n *Navigator) restartHere() error {
	if !n.active {
		return nil
	}
	return n.Restart(n.cursor.WrittenPosition, "")
}

// HandleProgress turns an engine progress report into a highlight. Reports
// for any utterance but the current one are ignored.
func (n *Navigator) HandleProgress(p tts.Progress) {
	if n.utt == nil || p.Utterance != n.current || n.current == 0 {
		return
	}

	spoken := p.Offset - n.envelope.OpeningLength() + n.cursor.SpokenRestart
	if spoken < 0 {
		return
	}

	start, length := n.utt.Map.Highlight(spoken, p.Count, &n.cursor)
	n.cursor.WrittenPosition = start
	if n.active {
		n.emit(start, length)
	}
}

// HandleCompleted ends the session when the current utterance finishes.
// The completion caused by a restart is swallowed once.
func (n *Navigator) HandleCompleted(c tts.Completion) {
	if n.restartPending {
		n.restartPending = false
		return
	}
	if c.Utterance == n.echo && n.echo != 0 {
		n.echo = 0
		return
	}
	if c.Utterance != n.current || n.current == 0 {
		return
	}

	if c.Err != nil {
		n.logger.Error("Speech failed", "utterance", c.Utterance, "error", c.Err)
	}
	n.stop()
}

// SetTransformer replaces the rules used from the next Speak or Echo on.
// The current session keeps its utterance.
func (n *Navigator) SetTransformer(t *pronounce.Transformer) {
	n.transformer = t
}

// Active reports whether a highlighted session is in progress.
func (n *Navigator) Active() bool { return n.active }

// Position returns the written offset of the word being spoken.
func (n *Navigator) Position() int { return n.cursor.WrittenPosition }

// Utterance returns the current transformation result, or nil.
func (n *Navigator) Utterance() *pronounce.Utterance { return n.utt }

// State returns the engine state.
func (n *Navigator) State() tts.StateType { return n.engine.State() }

// Rate returns the engine rate.
func (n *Navigator) Rate() int { return n.engine.Rate() }

func (n *Navigator) emit(start, length int) {
	if n.onHighlight != nil {
		n.onHighlight(Highlight{Start: start + n.base, Length: length})
	}
}

func (n *Navigator) selectVoice(name string) {
	if name == "" {
		return
	}
	if err := n.engine.SelectVoice(name); err != nil {
		n.logger.Warn("Voice not available", "voice", name, "error", err)
	}
}

// stop returns to the idle state, notifying the editor if a session ended.
func (n *Navigator) stop() {
	wasActive := n.active

	n.cursor.Reset()
	n.base = 0
	n.active = false
	n.current = 0

	if wasActive && n.onStop != nil {
		n.onStop()
	}
}
