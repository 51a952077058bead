// Package repository defines data access for the reservation service and
// the sentinel errors shared across repositories.  Sentinels let handlers
// distinguish failure scenarios: ErrForbidden maps to HTTP 403, ErrConflict
// to HTTP 409, and the per-entity not-found errors to HTTP 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update or delete cannot proceed because
// of dependent state, such as removing a showing that still has
// reservations.
var ErrConflict = errors.New("conflict")

var (
	ErrTheatreNotFound     = errors.New("theatre not found")
	ErrScreenNotFound      = errors.New("screen not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrShowingNotFound     = errors.New("showing not found")
	ErrReservationNotFound = errors.New("reservation not found")
)
