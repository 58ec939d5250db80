package tts

// SpeechEngine is an asynchronous speech synthesizer. It accepts a complete
// SSML document, speaks it in the background and reports word progress and
// completion through callbacks. Progress offsets count from the start of the
// document, envelope included. Callbacks run on the engine's own goroutine;
// callers that own single-threaded state must marshal them (see tts/sync).
type SpeechEngine interface {
	// Speak starts speaking the SSML document and returns its id. It fails
	// with ErrAlreadySpeaking while another utterance is active.
	Speak(ssml string) (Utterance, error)

	// Pause suspends the current utterance.
	Pause() error

	// Resume continues a paused utterance.
	Resume() error

	// CancelAll stops and discards everything, leaving the engine in
	// StateReady. It returns once the engine has stopped speaking.
	CancelAll()

	// State returns the current engine state.
	State() StateType

	// Voices returns the installed voices.
	Voices() []Voice

	// SelectVoice makes the named voice the active one.
	SelectVoice(name string) error

	// SetRate sets the speech rate, -10 (slowest) to 10 (fastest).
	SetRate(rate int)

	// Rate returns the speech rate.
	Rate() int

	// SetVolume sets the volume, 0 to 100.
	SetVolume(volume int)

	// Volume returns the volume.
	Volume() int

	// OnProgress registers the word progress callback.
	OnProgress(fn func(Progress))

	// OnCompleted registers the utterance completion callback.
	OnCompleted(fn func(Completion))
}

// Utterance identifies one call to SpeechEngine.Speak.
type Utterance uint64

// Progress reports that the engine is about to speak Count bytes of the
// document starting at Offset.
type Progress struct {
	Utterance Utterance
	Offset    int // byte offset into the full SSML document
	Count     int
}

// Completion reports the end of an utterance.
type Completion struct {
	Utterance Utterance
	Canceled  bool  // ended by CancelAll
	Err       error // synthesis failure, if any
}

// Voice represents an installed voice.
type Voice struct {
	ID       string // Voice identifier
	Name     string // Human-readable name
	Language string // Language code (e.g., "en-US")
	Gender   string // Voice gender
}
