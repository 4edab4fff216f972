package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves Places seats on one calendar date within the
// session's active range. Bookings are append-only.
type Booking struct {
	BaseSimple
	SessionID uuid.UUID `db:"session_id"`
	UserID    uuid.UUID `db:"user_id"`
	Date      time.Time `db:"date"`
	Places    int       `db:"places"`

	// UnitPrice is the per-place price read inside the booking
	// transaction, the amount the wallet was actually debited with.
	// Not a bookings column.
	UnitPrice int64 `db:"-"`
}

// UserBooking is a booking joined with the session details shown in
// the user's booking history.
type UserBooking struct {
	Booking
	StartTime Clock `db:"start_time"`
	EndTime   Clock `db:"end_time"`
	Price     int64 `db:"price"`
}
