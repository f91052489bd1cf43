package engine

// ============================================================================
// ERRORS - Validation vs Storage
// ============================================================================
// Unrecognized queries and empty result sets are NOT errors. They come back
// as ResultEmpty with a human-readable message.
// ============================================================================

// Fixed user-facing messages.
const (
	MessageEmptyQuery   = "Query cannot be empty."
	MessageUnrecognized = "Sorry, I didn't understand that query."
)

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrEmptyQuery returns the validation error for blank input.
func ErrEmptyQuery() error {
	return &ValidationError{Message: MessageEmptyQuery}
}

// StorageError wraps any fault raised by the persistence layer.
// Error() returns the underlying text verbatim so it can be surfaced as-is.
type StorageError struct {
	Op  string // acquire, select, get, commit
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage error during " + e.Op
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StorageError); ok {
		return se
	}
	return &StorageError{Op: op, Err: err}
}
