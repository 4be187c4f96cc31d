// Package apperr defines the error kinds shared by the core and the HTTP adapters.
package apperr

import "errors"

// Kind classifies an error for the caller
type Kind string

const (
	Unauthenticated        Kind = "Unauthenticated"
	MissingRequiredField   Kind = "MissingRequiredField"
	InvalidFrequencyID     Kind = "InvalidFrequencyId"
	FrequencyNotFound      Kind = "FrequencyNotFound"
	InvalidHabitType       Kind = "InvalidHabitType"
	TargetFieldsNotAllowed Kind = "TargetFieldsNotAllowed"
	TargetFieldsRequired   Kind = "TargetFieldsRequired"
	InvalidTargetValue     Kind = "InvalidTargetValue"
	InvalidTargetUnit      Kind = "InvalidTargetUnit"
	NotFound               Kind = "NotFound"
	Forbidden              Kind = "Forbidden"
	StorageFailure         Kind = "StorageFailure"

	InvalidRequest     Kind = "InvalidRequest"
	Conflict           Kind = "Conflict"
	InvalidCredentials Kind = "InvalidCredentials"
	InvalidToken       Kind = "InvalidToken"
)

// Error is a classified error with a user-facing message.
// Err carries the underlying cause and is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an Error of the given kind that keeps err as its cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Storage wraps a persistence failure. The message is opaque on purpose.
func Storage(err error) *Error {
	return Wrap(StorageFailure, "Internal server error", err)
}

// KindOf returns the kind of err, or StorageFailure for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StorageFailure
}

// Is reports whether err is an Error of the given kind
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
