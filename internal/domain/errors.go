package domain

import "errors"

// Shared error taxonomy. Services return these (optionally wrapped) and never
// log; handlers map each kind to an HTTP status.
var (
	ErrValidation             = errors.New("validation error")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
	ErrNotFound               = errors.New("not found")
)
