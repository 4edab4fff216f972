package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.AuthToken, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token, last_action, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.LastAction,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *tokenRepository) FindByToken(ctx context.Context, token uuid.UUID) (*entity.AuthToken, error) {
	query := `
		SELECT id, user_id, token, last_action, created_at
		FROM auth_tokens
		WHERE token = $1
	`

	var t entity.AuthToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.LastAction,
		&t.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &t, nil
}

func (r *tokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	query := `
		SELECT id, user_id, token, last_action, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`

	var t entity.AuthToken
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.LastAction,
		&t.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find auth token by user ID %s: %w", userID.String(), err)
	}

	return &t, nil
}

func (r *tokenRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE auth_tokens SET last_action = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to touch auth token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("touch auth token %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM auth_tokens WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete auth token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("delete auth token %s: %w", id.String(), err)
	}

	return nil
}
