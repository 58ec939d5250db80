// Package mock provides a paced speech engine that speaks nothing. It walks
// the words of an SSML document at a configurable rate and reports progress
// and completion the way a real synthesizer would, which makes it usable both
// as the default CLI engine and as a test double.
package mock

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/lostvoice/tts"
	ttssync "github.com/dgnsrekt/lostvoice/tts/sync"
	"golang.org/x/time/rate"
)

// DefaultVoices are the voices a new engine reports as installed.
var DefaultVoices = []tts.Voice{
	{ID: "mock-voice-1", Name: "Mock Voice 1", Language: "en-US", Gender: "neutral"},
	{ID: "mock-voice-2", Name: "Mock Voice 2", Language: "en-GB", Gender: "female"},
	{ID: "mock-voice-3", Name: "Mock Voice 3", Language: "en-US", Gender: "male"},
}

// word is a spoken token: byte offset and length within the document.
type word struct {
	offset int
	count  int
}

type utterance struct {
	id     tts.Utterance
	doc    string
	words  []word
	next   int           // next word to report
	resume chan struct{} // non-nil while paused
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine implements tts.SpeechEngine.
type Engine struct {
	mu     sync.Mutex
	sm     *tts.StateMachine
	events *ttssync.Dispatcher
	logger *log.Logger

	voices []tts.Voice
	voice  tts.Voice
	rate   int
	volume int

	wordsPerMinute int
	startDelay     time.Duration
	manual         bool

	onProgress  func(tts.Progress)
	onCompleted func(tts.Completion)

	last   tts.Utterance
	cur    *utterance
	closed bool

	// Control for testing
	shouldFail   bool
	failureError error
	callCount    int
	history      []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithWordsPerMinute sets the pace at rate 0.
func WithWordsPerMinute(wpm int) Option {
	return func(e *Engine) { e.wordsPerMinute = wpm }
}

// WithStartDelay sets the pause before the first word of an utterance.
func WithStartDelay(d time.Duration) Option {
	return func(e *Engine) { e.startDelay = d }
}

// WithVoices replaces the installed voices. The first becomes active.
func WithVoices(voices ...tts.Voice) Option {
	return func(e *Engine) { e.voices = voices }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Manual makes the engine speak only when told to. No goroutines are
// started: Step reports the next word, Finish completes the utterance, and
// Deliver runs pending callbacks on the caller's goroutine.
func Manual() Option {
	return func(e *Engine) { e.manual = true }
}

// New creates a new engine. Unless Manual is given, callbacks are delivered
// on a goroutine owned by the engine until Close is called.
func New(opts ...Option) *Engine {
	e := &Engine{
		sm:             tts.NewStateMachine(),
		events:         ttssync.NewDispatcher(),
		logger:         log.Default(),
		voices:         DefaultVoices,
		volume:         tts.MaxVolume,
		wordsPerMinute: 180,
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.voices) > 0 {
		e.voice = e.voices[0]
	}

	if !e.manual {
		go e.events.Run(context.Background())
	}

	return e
}

// Speak starts speaking doc.
func (e *Engine) Speak(doc string) (tts.Utterance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.callCount++
	if e.closed {
		return 0, tts.ErrEngineShutdown
	}
	if e.shouldFail {
		return 0, tts.NewTTSError(fmt.Errorf("%w: %w", tts.ErrSynthesisFailed, e.failureError), "mock", "speak")
	}
	if e.sm.Current() != tts.StateReady {
		return 0, tts.ErrAlreadySpeaking
	}

	e.last++
	u := &utterance{
		id:    e.last,
		doc:   doc,
		words: scanWords(doc),
		done:  make(chan struct{}),
	}
	e.cur = u
	e.history = append(e.history, doc)
	e.sm.Transition(tts.StateSpeaking)

	e.logger.Debug("Speaking", "utterance", u.id, "words", len(u.words), "voice", e.voice.Name, "rate", e.rate)

	if e.manual {
		close(u.done)
		return u.id, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	go e.run(ctx, u, e.wordInterval())

	return u.id, nil
}

// Pause suspends the current utterance.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sm.Current() != tts.StateSpeaking {
		return tts.ErrNotSpeaking
	}
	e.sm.Transition(tts.StatePaused)
	e.cur.resume = make(chan struct{})
	return nil
}

// Resume continues a paused utterance.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sm.Current() != tts.StatePaused {
		return tts.ErrNotPaused
	}
	e.resumeLocked()
	return nil
}

func (e *Engine) resumeLocked() {
	e.sm.Transition(tts.StateSpeaking)
	close(e.cur.resume)
	e.cur.resume = nil
}

// CancelAll stops the current utterance, resuming it first if paused, and
// waits for its worker to exit. A canceled completion is reported for it.
func (e *Engine) CancelAll() {
	e.mu.Lock()
	u := e.cur
	if u == nil {
		e.mu.Unlock()
		return
	}
	if e.sm.Current() == tts.StatePaused {
		e.resumeLocked()
	}
	e.cur = nil
	e.sm.Transition(tts.StateReady)
	e.logger.Debug("Canceled", "utterance", u.id)

	if e.manual {
		e.postCompletion(tts.Completion{Utterance: u.id, Canceled: true})
	}
	e.mu.Unlock()

	if u.cancel != nil {
		u.cancel()
	}
	<-u.done
}

// State returns the current engine state.
func (e *Engine) State() tts.StateType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sm.Current()
}

// Voices returns the installed voices.
func (e *Engine) Voices() []tts.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]tts.Voice, len(e.voices))
	copy(out, e.voices)
	return out
}

// Voice returns the active voice.
func (e *Engine) Voice() tts.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice
}

// SelectVoice activates the voice best matching name.
func (e *Engine) SelectVoice(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, err := tts.FindVoice(e.voices, name)
	if err != nil {
		return err
	}
	e.voice = v
	return nil
}

// SetRate sets the speech rate, clamped to the valid range. It applies to
// the next utterance.
func (e *Engine) SetRate(r int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = min(max(r, tts.MinRate), tts.MaxRate)
}

// Rate returns the speech rate.
func (e *Engine) Rate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetVolume sets the volume, clamped to the valid range.
func (e *Engine) SetVolume(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = min(max(v, tts.MinVolume), tts.MaxVolume)
}

// Volume returns the volume.
func (e *Engine) Volume() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// OnProgress registers the word progress callback.
func (e *Engine) OnProgress(fn func(tts.Progress)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onProgress = fn
}

// OnCompleted registers the completion callback.
func (e *Engine) OnCompleted(fn func(tts.Completion)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onCompleted = fn
}

// Close cancels any utterance and stops callback delivery once pending
// callbacks have run.
func (e *Engine) Close() {
	e.CancelAll()

	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.events.Close()
}

// run paces the words of u until the end or cancellation.
func (e *Engine) run(ctx context.Context, u *utterance, interval time.Duration) {
	defer close(u.done)

	if e.startDelay > 0 {
		select {
		case <-ctx.Done():
			e.finish(u)
			return
		case <-time.After(e.startDelay):
		}
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for range u.words {
		if err := limiter.Wait(ctx); err != nil {
			e.finish(u)
			return
		}
		if !e.waitWhilePaused(ctx, u) {
			e.finish(u)
			return
		}
		e.mu.Lock()
		e.stepLocked(u)
		e.mu.Unlock()
	}

	e.finish(u)
}

// waitWhilePaused blocks while u is paused. It reports false if u was
// canceled.
func (e *Engine) waitWhilePaused(ctx context.Context, u *utterance) bool {
	e.mu.Lock()
	ch := u.resume
	e.mu.Unlock()
	if ch == nil {
		return ctx.Err() == nil
	}

	select {
	case <-ctx.Done():
		return false
	case <-ch:
		return true
	}
}

// stepLocked reports the next word of u if it is still current.
func (e *Engine) stepLocked(u *utterance) bool {
	if e.cur != u || u.next >= len(u.words) {
		return false
	}
	w := u.words[u.next]
	u.next++

	fn := e.onProgress
	p := tts.Progress{Utterance: u.id, Offset: w.offset, Count: w.count}
	e.events.Post(func() {
		if fn != nil {
			fn(p)
		}
	})
	return true
}

// finish reports the end of u. An utterance that is no longer current was
// canceled.
func (e *Engine) finish(u *utterance) {
	e.mu.Lock()
	defer e.mu.Unlock()

	canceled := e.cur != u
	if !canceled {
		e.cur = nil
		e.sm.Transition(tts.StateReady)
	}
	e.postCompletion(tts.Completion{Utterance: u.id, Canceled: canceled})
}

func (e *Engine) postCompletion(c tts.Completion) {
	fn := e.onCompleted
	e.events.Post(func() {
		if fn != nil {
			fn(c)
		}
	})
}

// wordInterval is the time per word at the current rate. Each rate step
// changes speed by the same factor the navigator assumes.
func (e *Engine) wordInterval() time.Duration {
	wpm := float64(e.wordsPerMinute) * math.Pow(2, float64(e.rate)*0.15)
	if wpm <= 0 {
		wpm = 1
	}
	return time.Duration(float64(time.Minute) / wpm)
}

// scanWords splits doc into whitespace-separated tokens, ignoring markup
// between '<' and '>'.
func scanWords(doc string) []word {
	var words []word
	start := -1
	inTag := false

	flush := func(end int) {
		if start >= 0 {
			words = append(words, word{offset: start, count: end - start})
			start = -1
		}
	}

	for i := 0; i < len(doc); {
		r, size := utf8.DecodeRuneInString(doc[i:])
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			flush(i)
			inTag = true
		case unicode.IsSpace(r):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
		i += size
	}
	flush(len(doc))

	return words
}

// Test control methods

// Step reports the next word of the current utterance through the callback
// queue. It returns false when there is nothing left to report or the
// utterance is paused.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil || e.sm.Current() != tts.StateSpeaking {
		return false
	}
	return e.stepLocked(e.cur)
}

// Finish completes the current utterance normally.
func (e *Engine) Finish() {
	e.mu.Lock()
	u := e.cur
	e.mu.Unlock()
	if u != nil {
		e.finish(u)
	}
}

// Emit queues an arbitrary progress report, such as a stale one.
func (e *Engine) Emit(p tts.Progress) {
	e.mu.Lock()
	fn := e.onProgress
	e.mu.Unlock()
	e.events.Post(func() {
		if fn != nil {
			fn(p)
		}
	})
}

// Deliver runs pending callbacks on the calling goroutine and returns how
// many ran. It is meant for Manual engines.
func (e *Engine) Deliver() int {
	return e.events.Drain()
}

// Words returns the offsets and lengths the engine will report for doc.
func Words(doc string) [][2]int {
	ws := scanWords(doc)
	out := make([][2]int, len(ws))
	for i, w := range ws {
		out[i] = [2]int{w.offset, w.count}
	}
	return out
}

// SetFailure configures the engine to fail Speak with the given error.
func (e *Engine) SetFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = true
	e.failureError = err
}

// ClearFailure resets the engine to normal operation.
func (e *Engine) ClearFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = false
	e.failureError = nil
}

// CallCount returns the number of Speak calls.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// History returns every document passed to Speak, oldest first.
func (e *Engine) History() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

var _ tts.SpeechEngine = (*Engine)(nil)
