package tts

import "errors"

// Common errors for the speech system.
var (
	// Engine errors
	ErrEngineNotAvailable = errors.New("speech engine is not available")
	ErrEngineShutdown     = errors.New("speech engine has been shut down")
	ErrVoiceNotFound      = errors.New("requested voice not found")
	ErrSynthesisFailed    = errors.New("speech synthesis failed")
	ErrAlreadySpeaking    = errors.New("an utterance is already being spoken")
	ErrNotSpeaking        = errors.New("nothing is being spoken")
	ErrNotPaused          = errors.New("speech is not paused")

	// Navigation errors
	ErrNothingToSpeak = errors.New("no text to speak")

	// Lexicon errors
	ErrLexiconFormat = errors.New("unsupported lexicon format")
	ErrLexiconParse  = errors.New("lexicon could not be parsed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("required configuration missing")

	// General errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// IsRecoverableError checks if an error is recoverable.
func IsRecoverableError(err error) bool {
	if err == nil {
		return true
	}

	// Non-recoverable errors
	switch {
	case errors.Is(err, ErrEngineNotAvailable),
		errors.Is(err, ErrEngineShutdown),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrMissingConfig),
		errors.Is(err, ErrPermissionDenied):
		return false
	}

	// Most errors are recoverable
	return true
}

// ErrorSeverity represents the severity of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for informational messages.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for warnings that don't prevent operation.
	SeverityWarning
	// SeverityError is for errors that prevent normal operation.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// TTSError provides detailed error information.
type TTSError struct {
	Err       error                  // The underlying error
	Component string                 // Component that generated the error
	Action    string                 // Action being performed when error occurred
	Severity  ErrorSeverity          // Severity of the error
	Context   map[string]interface{} // Additional context
}

// Error implements the error interface.
func (e *TTSError) Error() string {
	if e.Err == nil {
		return "unknown speech error"
	}
	if e.Component == "" {
		return e.Err.Error()
	}
	return e.Component + ": " + e.Action + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TTSError) Unwrap() error {
	return e.Err
}

// IsRecoverable checks if the error is recoverable.
func (e *TTSError) IsRecoverable() bool {
	return IsRecoverableError(e.Err)
}

// NewTTSError creates a new error with context.
func NewTTSError(err error, component, action string) *TTSError {
	return &TTSError{
		Err:       err,
		Component: component,
		Action:    action,
		Severity:  SeverityError,
		Context:   make(map[string]interface{}),
	}
}

// WithSeverity sets the error severity.
func (e *TTSError) WithSeverity(severity ErrorSeverity) *TTSError {
	e.Severity = severity
	return e
}

// WithContext adds context to the error.
func (e *TTSError) WithContext(key string, value interface{}) *TTSError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}
