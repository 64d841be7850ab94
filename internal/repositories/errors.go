package repositories

import "errors"

// ErrCacheMiss is returned by a ReportCache when no live entry exists for a key
var ErrCacheMiss = errors.New("report cache miss")

// RepositoryError represents errors from the evaluation store or the report cache
type RepositoryError struct {
	Operation string
	Key       string
	Err       error
	Message   string
}

func (e *RepositoryError) Error() string {
	prefix := e.Operation
	if e.Key != "" {
		prefix += " (" + e.Key + ")"
	}
	if e.Message != "" {
		prefix += ": " + e.Message
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(operation string, key string, err error, message string) *RepositoryError {
	return &RepositoryError{
		Operation: operation,
		Key:       key,
		Err:       err,
		Message:   message,
	}
}
