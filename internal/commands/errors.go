package commands

import (
	"errors"

	"github.com/mrlokans/lunch/internal/database"
	"github.com/mrlokans/lunch/internal/entities"
	"github.com/mrlokans/lunch/internal/selector"
)

// NoRestaurantsMessage is shown when a roll finds nothing in the requested category.
const NoRestaurantsMessage = "No restaurants found!"

type ErrorKind string

const (
	KindConflict ErrorKind = "conflict"
	KindEmpty    ErrorKind = "empty"
	KindNotFound ErrorKind = "not_found"
	KindInvalid  ErrorKind = "invalid"
	KindInternal ErrorKind = "internal"
)

// Error carries the user-facing message for a failed command. Err is the cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// translate turns store and selector errors into user-facing errors. name is the
// restaurant the command was about.
func translate(err error, name string) error {
	if err == nil {
		return nil
	}
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return err
	}

	switch {
	case errors.Is(err, database.ErrConflict):
		return &Error{Kind: KindConflict, Message: name + " already exists", Err: err}
	case errors.Is(err, selector.ErrEmpty):
		return &Error{Kind: KindEmpty, Message: NoRestaurantsMessage, Err: err}
	case errors.Is(err, database.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, database.ErrInvalidName), errors.Is(err, entities.ErrInvalidCategory):
		return &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
	default:
		return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	}
}

// KindOf returns the kind of a command error, or KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return KindInternal
}
