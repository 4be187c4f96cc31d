package domain

import "errors"

var (
	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when a write matched no row
	ErrNotFound = errors.New("record not found")
	// ErrInUse is returned when a row cannot be deleted because others reference it
	ErrInUse = errors.New("record still referenced")
)
