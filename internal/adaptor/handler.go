package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-sessions/internal/data/repository"
	"cinema-sessions/internal/usecase"
	"cinema-sessions/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Hall    *HallHandler
	Session *SessionHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Hall:    NewHallHandler(service.Hall, log),
		Session: NewSessionHandler(service.Session, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError translates a service failure into an HTTP
// response. Domain failures map to client errors, everything else is a
// 500 with the detail kept out of the body.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	logWarn := func(reason string) {
		log.Warn(operation+" failed - "+reason, zap.Error(err))
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		logWarn("invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, repository.ErrNotFound):
		logWarn("not found")
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, repository.ErrNameTaken):
		logWarn("name taken")
		utils.ResponseBadRequest(w, "Name is already taken", nil)

	case errors.Is(err, repository.ErrSessionsCollide):
		logWarn("collision")
		utils.ResponseBadRequest(w, "Session collides with another one", nil)

	case errors.Is(err, repository.ErrIncorrectDateRange):
		logWarn("incorrect date range")
		utils.ResponseBadRequest(w, "Incorrect date", nil)

	case errors.Is(err, repository.ErrBookedSessionExists):
		logWarn("booked sessions exist")
		utils.ResponseBadRequest(w, "Booked sessions exist", nil)

	case errors.Is(err, repository.ErrIncorrectBookingDate):
		logWarn("incorrect booking date")
		utils.ResponseBadRequest(w, "Incorrect data", nil)

	case errors.Is(err, repository.ErrDateExpired):
		logWarn("date expired")
		utils.ResponseBadRequest(w, "Date expired", nil)

	case errors.Is(err, repository.ErrNoFreePlaces):
		logWarn("no free places")
		utils.ResponseBadRequest(w, "Not enough free places", nil)

	case errors.Is(err, repository.ErrNotEnoughMoney):
		logWarn("not enough money")
		utils.ResponseBadRequest(w, "Not enough money", nil)

	case errors.Is(err, repository.ErrTxConflict):
		logWarn("transaction conflict")
		utils.ResponseConflict(w, "Too many concurrent requests, please try again")

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "parse"):
		logWarn("bad input")
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
