package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for exit-status and reporting purposes.
type ErrorKind int

const (
	// ErrKindConfig is fatal at startup; no job runs after it.
	ErrKindConfig ErrorKind = iota
	// ErrKindIO covers unreadable inputs, uncreatable outputs, tile and blob I/O.
	ErrKindIO
	// ErrKindCompression covers codec failures on a tile.
	ErrKindCompression
	// ErrKindMetadata covers descriptor write failures.
	ErrKindMetadata
)

// JobError wraps an underlying error with its taxonomy kind. Per-job kinds
// are caught by the runner and degrade only that job's result; only config
// errors abort the process.
type JobError struct {
	Kind ErrorKind
	Err  error
}

func (e *JobError) Error() string { return e.Err.Error() }

func (e *JobError) Unwrap() error { return e.Err }

// NewConfigError creates a process-fatal configuration error.
func NewConfigError(format string, args ...any) error {
	return &JobError{Kind: ErrKindConfig, Err: fmt.Errorf(format, args...)}
}

// WrapIO tags err as a job-local I/O failure.
func WrapIO(err error) error {
	return &JobError{Kind: ErrKindIO, Err: err}
}

// WrapCompression tags err as a job-local compression failure.
func WrapCompression(err error) error {
	return &JobError{Kind: ErrKindCompression, Err: err}
}

// WrapMetadata tags err as a job-local metadata write failure.
func WrapMetadata(err error) error {
	return &JobError{Kind: ErrKindMetadata, Err: err}
}

// IsConfigError reports whether err is (or wraps) a configuration error.
func IsConfigError(err error) bool {
	var je *JobError
	return errors.As(err, &je) && je.Kind == ErrKindConfig
}
