package wire

import (
	"cinema-sessions/internal/adaptor"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/middleware"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sessions/{id}/places/{date} - Free places left on a session
	r.Get("/api/sessions/{id}/places/{date}", bookingHandler.GetFreePlaces)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthToken(repo.Token, tokenExpiry(config), log))

		// POST /api/sessions/{id}/book/{date} - Book places, debiting the wallet
		r.Post("/api/sessions/{id}/book/{date}", bookingHandler.Book)

		// GET /api/user/bookings - Booking history with total spent
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})
}
