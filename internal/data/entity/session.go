package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a recurring daily screening slot: active across
// [StartDate, EndDate], every day in the [StartTime, EndTime) window,
// in one hall at a fixed price per place.
type Session struct {
	Base
	HallID    uuid.UUID `db:"hall_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	StartTime Clock     `db:"start_time"`
	EndTime   Clock     `db:"end_time"`
	Price     int64     `db:"price"`
}

// Wraps reports whether the daily window continues past midnight.
func (s *Session) Wraps() bool {
	return s.StartTime >= s.EndTime
}

// ActiveOn reports whether date falls inside the session's date range.
func (s *Session) ActiveOn(date time.Time) bool {
	return !date.Before(s.StartDate) && !date.After(s.EndDate)
}

// CollidesWith reports whether two sessions occupy the same slot:
// their date ranges overlap and their daily time windows overlap.
func (s *Session) CollidesWith(other *Session) bool {
	return DateRangesOverlap(s.StartDate, s.EndDate, other.StartDate, other.EndDate) &&
		TimeRangesOverlap(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// SessionAvailability pairs a session with the number of free places
// left on one specific date.
type SessionAvailability struct {
	Session
	FreePlaces int `db:"free_places"`
}
