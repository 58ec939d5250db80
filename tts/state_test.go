package tts

import "testing"

// TestStateTypeString tests the String() method for StateType.
func TestStateTypeString(t *testing.T) {
	tests := []struct {
		state    StateType
		expected string
	}{
		{StateReady, "ready"},
		{StateSpeaking, "speaking"},
		{StatePaused, "paused"},
		{StateType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.state.String(); result != tt.expected {
				t.Errorf("StateType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// TestStateIsActive tests the IsActive() method.
func TestStateIsActive(t *testing.T) {
	tests := []struct {
		state    StateType
		expected bool
	}{
		{StateReady, false},
		{StateSpeaking, true},
		{StatePaused, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if result := tt.state.IsActive(); result != tt.expected {
				t.Errorf("IsActive() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// TestStateMachineTransitions tests every transition from every state.
func TestStateMachineTransitions(t *testing.T) {
	tests := []struct {
		from  StateType
		to    StateType
		valid bool
	}{
		{StateReady, StateSpeaking, true},
		{StateReady, StatePaused, false},
		{StateReady, StateReady, false},
		{StateSpeaking, StatePaused, true},
		{StateSpeaking, StateReady, true},
		{StateSpeaking, StateSpeaking, false},
		{StatePaused, StateSpeaking, true},
		{StatePaused, StateReady, true},
		{StatePaused, StatePaused, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			sm := NewStateMachine()
			sm.current = tt.from

			if got := sm.Transition(tt.to); got != tt.valid {
				t.Errorf("Transition() = %v, want %v", got, tt.valid)
			}

			want := tt.from
			if tt.valid {
				want = tt.to
			}
			if sm.Current() != want {
				t.Errorf("Current() = %v, want %v", sm.Current(), want)
			}
		})
	}
}
