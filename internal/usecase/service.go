package usecase

import (
	"errors"

	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/database"
	"cinema-sessions/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Hall    HallService
	Session SessionService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Hall:    NewHallService(repo, log),
		Session: NewSessionService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}

// maxTxAttempts bounds how often a conflicting transaction is re-run
// before the failure is surfaced to the caller.
const maxTxAttempts = 3

// withTxRetry re-runs fn when the transaction hit a serialization
// conflict or deadlock. Business-rule failures pass through untouched.
func withTxRetry(log *zap.Logger, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = fn()
		if err == nil || !database.IsConflict(err) {
			return err
		}
		log.Warn("Transaction conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return repository.ErrTxConflict
}

// rejectReason maps a domain failure to a bounded metrics label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrSessionsCollide):
		return "collision"
	case errors.Is(err, repository.ErrIncorrectDateRange):
		return "incorrect_date_range"
	case errors.Is(err, repository.ErrBookedSessionExists):
		return "booked_session_exists"
	case errors.Is(err, repository.ErrIncorrectBookingDate):
		return "incorrect_date"
	case errors.Is(err, repository.ErrDateExpired):
		return "date_expired"
	case errors.Is(err, repository.ErrNoFreePlaces):
		return "no_free_places"
	case errors.Is(err, repository.ErrNotEnoughMoney):
		return "not_enough_money"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrTxConflict):
		return "tx_conflict"
	default:
		return "error"
	}
}
