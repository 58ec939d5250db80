package tts

// StateType is the playback state of a speech engine.
type StateType int

const (
	// StateReady indicates nothing is being spoken.
	StateReady StateType = iota
	// StateSpeaking indicates an utterance is being spoken.
	StateSpeaking
	// StatePaused indicates an utterance is paused mid-way.
	StatePaused
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// IsActive returns true if an utterance is in progress, paused or not.
func (s StateType) IsActive() bool {
	return s == StateSpeaking || s == StatePaused
}

// StateMachine guards the engine state transitions:
//
//	Ready -> Speaking -> {Paused <-> Speaking, Ready}
//
// It is not safe for concurrent use; owners hold their own lock.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
}

// NewStateMachine creates a new state machine in StateReady.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateReady,
		transitions: map[StateType][]StateType{
			StateReady:    {StateSpeaking},
			StateSpeaking: {StatePaused, StateReady},
			StatePaused:   {StateSpeaking, StateReady},
		},
	}
}

// Transition attempts to move to the specified state and reports whether
// the move was allowed.
func (sm *StateMachine) Transition(to StateType) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	sm.current = to
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}
