package tts

import (
	"errors"
	"fmt"
	"testing"
)

// TestIsRecoverableError tests the IsRecoverableError function.
func TestIsRecoverableError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
	}{
		// Non-recoverable errors
		{"engine not available", ErrEngineNotAvailable, false},
		{"engine shutdown", ErrEngineShutdown, false},
		{"invalid config", ErrInvalidConfig, false},
		{"missing config", ErrMissingConfig, false},
		{"permission denied", ErrPermissionDenied, false},
		{"wrapped invalid config", fmt.Errorf("rate: %w", ErrInvalidConfig), false},

		// Recoverable errors
		{"synthesis failed", ErrSynthesisFailed, true},
		{"already speaking", ErrAlreadySpeaking, true},
		{"not speaking", ErrNotSpeaking, true},
		{"voice not found", ErrVoiceNotFound, true},
		{"resource not found", ErrResourceNotFound, true},

		// Nil error is recoverable
		{"nil error", nil, true},

		// Unknown error is recoverable by default
		{"unknown error", errors.New("unknown"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsRecoverableError(tt.err)
			if result != tt.recoverable {
				t.Errorf("IsRecoverableError(%v) = %v, want %v", tt.err, result, tt.recoverable)
			}
		})
	}
}

// TestTTSError tests the TTSError type.
func TestTTSError(t *testing.T) {
	baseErr := ErrSynthesisFailed
	ttsErr := NewTTSError(baseErr, "engine", "speak")

	expected := "engine: speak: " + baseErr.Error()
	if ttsErr.Error() != expected {
		t.Errorf("TTSError.Error() = %q, want %q", ttsErr.Error(), expected)
	}

	if !errors.Is(ttsErr, baseErr) {
		t.Error("errors.Is should see the base error")
	}

	if !ttsErr.IsRecoverable() {
		t.Error("TTSError.IsRecoverable() should return true for synthesis failed")
	}

	if ttsErr.Severity != SeverityError {
		t.Errorf("Default severity = %v, want %v", ttsErr.Severity, SeverityError)
	}
}

// TestTTSErrorWithSeverity tests severity setting.
func TestTTSErrorWithSeverity(t *testing.T) {
	ttsErr := NewTTSError(ErrVoiceNotFound, "navigator", "select voice").
		WithSeverity(SeverityWarning)

	if ttsErr.Severity != SeverityWarning {
		t.Errorf("Severity = %v, want %v", ttsErr.Severity, SeverityWarning)
	}
	if ttsErr.Severity.String() != "warning" {
		t.Errorf("Severity.String() = %q", ttsErr.Severity.String())
	}
}

// TestTTSErrorWithContext tests context adding.
func TestTTSErrorWithContext(t *testing.T) {
	ttsErr := &TTSError{Err: ErrNothingToSpeak}
	ttsErr.WithContext("offset", 42).WithContext("length", 40)

	if ttsErr.Context["offset"] != 42 {
		t.Errorf("Context[offset] = %v, want 42", ttsErr.Context["offset"])
	}
	if ttsErr.Context["length"] != 40 {
		t.Errorf("Context[length] = %v, want 40", ttsErr.Context["length"])
	}
}

// TestTTSErrorMessages tests Error() for partial errors.
func TestTTSErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *TTSError
		expected string
	}{
		{"nil error", &TTSError{Component: "test"}, "unknown speech error"},
		{"no component", &TTSError{Err: ErrVoiceNotFound}, ErrVoiceNotFound.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}
