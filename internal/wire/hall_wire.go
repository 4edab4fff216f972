package wire

import (
	"cinema-sessions/internal/adaptor"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/middleware"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireHall(
	r chi.Router,
	hallHandler *adaptor.HallHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/halls", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthToken(repo.Token, tokenExpiry(config), log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/halls - List halls
		r.Get("/", hallHandler.GetHalls)

		// POST /api/admin/halls - Create a hall
		r.Post("/", hallHandler.CreateHall)

		// GET /api/admin/halls/{id} - View one hall
		r.Get("/{id}", hallHandler.GetHallByID)

		// PUT /api/admin/halls/{id} - Update a hall (fails when booked sessions exist)
		r.Put("/{id}", hallHandler.UpdateHall)
	})
}
