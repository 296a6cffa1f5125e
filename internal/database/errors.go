package database

import (
	"errors"
	"fmt"

	"github.com/mrlokans/lunch/internal/entities"
)

var (
	// ErrConflict is returned when a restaurant name is already taken.
	ErrConflict = errors.New("already exists")

	// ErrNotFound is returned when an operation targets a restaurant that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidName is returned for names that are empty or whitespace only.
	ErrInvalidName = errors.New("restaurant name must not be empty")

	// ErrLockTimeout is returned when exclusive access could not be obtained in time.
	ErrLockTimeout = errors.New("timed out waiting for database lock")
)

// IOError reports a failure of the underlying storage: open, read, write or corruption.
// Any write that was in progress has been rolled back.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is a storage failure rather than a business outcome.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// wrapIO leaves business errors untouched and wraps everything else in *IOError.
func wrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsIOError(err) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, entities.ErrInvalidCategory) {
		return err
	}
	return &IOError{Op: op, Err: err}
}

func conflictError(name string) error {
	return fmt.Errorf("restaurant %q %w", name, ErrConflict)
}

func notFoundError(name string) error {
	return fmt.Errorf("restaurant %q %w", name, ErrNotFound)
}
