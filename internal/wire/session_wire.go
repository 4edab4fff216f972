package wire

import (
	"cinema-sessions/internal/adaptor"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/middleware"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sessions/now - Sessions running today, filterable by hall and time window
	r.Get("/api/sessions/now", sessionHandler.GetSessionsNow)

	// GET /api/sessions/{date} - Sessions active on a date with free places left
	r.Get("/api/sessions/{date}", sessionHandler.GetSessionsByDate)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/sessions", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthToken(repo.Token, tokenExpiry(config), log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/sessions - List sessions
		r.Get("/", sessionHandler.GetSessions)

		// POST /api/admin/sessions - Schedule a session (collision-checked)
		r.Post("/", sessionHandler.CreateSession)

		// PUT /api/admin/sessions/{id} - Reschedule a session (collision-checked)
		r.Put("/{id}", sessionHandler.UpdateSession)
	})
}
