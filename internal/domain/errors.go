package domain

import "errors"

var (
	// ErrMissingPrimaryFile is returned when a block folder exists but its
	// required trade log is absent
	ErrMissingPrimaryFile = errors.New("block folder is missing its trade log")

	// ErrSourceNotFound is returned when a sync is requested for a source
	// that exists neither on disk nor in sync state
	ErrSourceNotFound = errors.New("source not found")

	// ErrWriteConflict is returned when the store detects a concurrent
	// write to the same source
	ErrWriteConflict = errors.New("concurrent write conflict")
)
