package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrEmailTaken        = errors.New("email already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// WriteError reports a write the local store rejected. It is the
// structured {success:false, message} result of a failed gateway write;
// the low-level cause stays reachable through Unwrap.
type WriteError struct {
	Op      string
	Key     string
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s [key=%s]: %v", e.Op, e.Message, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Success is always false; it mirrors the shape shown to the user.
func (e *WriteError) Success() bool {
	return false
}

// IsWriteError checks if err carries a rejected store write.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
