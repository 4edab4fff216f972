package wire

import (
	"time"

	"cinema-sessions/internal/adaptor"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/middleware"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create a client account
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Obtain an auth token
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthToken(repo.Token, tokenExpiry(config), log))

		// POST /api/logout - Revoke the current token
		r.Post("/api/logout", authHandler.Logout)
	})
}

func tokenExpiry(config *utils.Config) time.Duration {
	return time.Duration(config.Auth.TokenExpiryMinutes) * time.Minute
}
