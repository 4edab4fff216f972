package middleware

import (
	"net/http"
	"strings"
	"time"

	"cinema-sessions/internal/data/repository"
	"cinema-sessions/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthToken validates the opaque bearer token and refreshes its
// sliding expiry: a token unused for longer than expiry is deleted and
// the request rejected, otherwise last_action is bumped.
func AuthToken(tokenRepo repository.TokenRepository, expiry time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			tokenValue, err := uuid.Parse(parts[1])
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			token, err := tokenRepo.FindByToken(r.Context(), tokenValue)
			if err != nil {
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if token == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			now := time.Now()
			if now.Sub(token.LastAction) > expiry {
				if err := tokenRepo.Delete(r.Context(), token.ID); err != nil {
					logger.Warn("Failed to delete expired token", zap.Error(err))
				}
				utils.ResponseUnauthorized(w, "Token has expired. Please, obtain a new one.")
				return
			}

			if err := tokenRepo.Touch(r.Context(), token.ID, now); err != nil {
				logger.Warn("Failed to touch token",
					zap.Error(err),
					zap.String("token_id", token.ID.String()))
			}

			ctx := utils.SetUserContext(r.Context(), token.UserID, "client")
			ctx = utils.SetTokenContext(ctx, parts[1])

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the authenticated user to have the admin role.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
