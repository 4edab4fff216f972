// Package repository persists halls, sessions, bookings and users, and
// defines the domain failure kinds surfaced by the scheduling and
// booking transactions. The failures are sentinel values so higher
// layers can tell the scenarios apart with errors.Is and translate each
// one into its own user-facing message instead of inspecting error
// text.
package repository

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken is returned when a unique name (hall name,
	// username) is already in use.
	ErrNameTaken = errors.New("name already taken")

	// ErrBookedSessionExists rejects mutation of a hall or session
	// that already has dependent bookings.
	ErrBookedSessionExists = errors.New("booked sessions exist")

	// ErrIncorrectDateRange rejects a session whose range is reversed,
	// zero-length on a single day, or ends in the past.
	ErrIncorrectDateRange = errors.New("incorrect date range")

	// ErrSessionsCollide rejects a session whose date range and daily
	// time window both overlap another session in the same hall.
	ErrSessionsCollide = errors.New("sessions collide")

	// ErrIncorrectBookingDate rejects a booking date outside the
	// session's active date range.
	ErrIncorrectBookingDate = errors.New("incorrect booking date")

	// ErrDateExpired rejects a booking for a date that has already
	// elapsed, even when the session itself is still active.
	ErrDateExpired = errors.New("date expired")

	// ErrNoFreePlaces rejects a booking that would exceed the hall
	// capacity for that session and date.
	ErrNoFreePlaces = errors.New("no free places")

	// ErrNotEnoughMoney rejects a booking the user's wallet cannot
	// cover.
	ErrNotEnoughMoney = errors.New("not enough money")

	// ErrTxConflict is returned after a bounded number of retries of a
	// conflicting transaction. Callers should try again.
	ErrTxConflict = errors.New("transaction conflict")
)
