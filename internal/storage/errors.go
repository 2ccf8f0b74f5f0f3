package storage

import (
	"errors"
	"fmt"
)

// Error kinds for the snippet store. Callers distinguish failures with
// errors.Is so a presentation layer can produce a specific message.
// "No matching record" is signaled by sentinel return values, never by
// an error.
var (
	// ErrDirectory means the storage directory could not be created.
	ErrDirectory = errors.New("storage directory error")
	// ErrWrite means the snippets file could not be written after
	// serialization succeeded.
	ErrWrite = errors.New("storage write error")
	// ErrRead means the snippets file exists but could not be read or
	// parsed. A missing file is not a read error; it reads as an empty
	// collection.
	ErrRead = errors.New("storage read error")
)

// StoreError pairs an error kind with the underlying cause.
type StoreError struct {
	Kind error // One of ErrDirectory, ErrWrite, ErrRead
	Err  error // Underlying cause
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Kind
}

// directoryError wraps err as an ErrDirectory failure.
func directoryError(err error) error {
	return &StoreError{Kind: ErrDirectory, Err: err}
}

// writeError wraps err as an ErrWrite failure.
func writeError(err error) error {
	return &StoreError{Kind: ErrWrite, Err: err}
}

// readError wraps err as an ErrRead failure.
func readError(err error) error {
	return &StoreError{Kind: ErrRead, Err: err}
}
