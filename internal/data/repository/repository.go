package repository

import (
	"cinema-sessions/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Token   TokenRepository
	Hall    HallRepository
	Session SessionRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Token:   NewTokenRepository(db, log),
		Hall:    NewHallRepository(db, log),
		Session: NewSessionRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
