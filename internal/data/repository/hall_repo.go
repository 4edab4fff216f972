package repository

import (
	"context"
	"fmt"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall) error
	// Update mutates a hall inside one transaction and fails with
	// ErrBookedSessionExists when any booking exists for any of the
	// hall's sessions.
	Update(ctx context.Context, hall *entity.Hall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error)
	Count(ctx context.Context) (int64, error)
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall) error {
	query := `
		INSERT INTO halls (id, name, size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Size,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if database.IsUniqueViolation(err) {
		return ErrNameTaken
	}
	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
		)
		return fmt.Errorf("create hall %s: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the hall row first so the booked-session check cannot
		// race a concurrent booking.
		var id uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hall.ID).Scan(&id)
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock hall %s: %w", hall.ID.String(), err)
		}

		// Lock the hall's session rows as well: booking transactions
		// hold the session row lock while inserting, so any in-flight
		// booking commits or rolls back before the check below runs.
		_, err = tx.Exec(ctx, `SELECT id FROM sessions WHERE hall_id = $1 FOR UPDATE`, hall.ID)
		if err != nil {
			return fmt.Errorf("lock sessions of hall %s: %w", hall.ID.String(), err)
		}

		var booked bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1
				FROM bookings b
				JOIN sessions s ON s.id = b.session_id
				WHERE s.hall_id = $1
			)
		`, hall.ID).Scan(&booked)
		if err != nil {
			return fmt.Errorf("check booked sessions for hall %s: %w", hall.ID.String(), err)
		}
		if booked {
			return ErrBookedSessionExists
		}

		_, err = tx.Exec(ctx, `
			UPDATE halls
			SET name = $2, size = $3, updated_at = $4
			WHERE id = $1
		`, hall.ID, hall.Name, hall.Size, hall.UpdatedAt)
		if database.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		if err != nil {
			return fmt.Errorf("update hall %s: %w", hall.ID.String(), err)
		}

		return nil
	})

	if err != nil {
		switch err {
		case ErrNotFound, ErrBookedSessionExists, ErrNameTaken:
		default:
			r.log.Error("Failed to update hall",
				zap.Error(err),
				zap.String("hall_id", hall.ID.String()),
			)
		}
	}

	return err
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, name, size, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Size,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error) {
	query := `
		SELECT id, name, size, created_at, updated_at
		FROM halls
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list halls", zap.Error(err))
		return nil, fmt.Errorf("list halls: %w", err)
	}
	defer rows.Close()

	var halls []*entity.Hall
	for rows.Next() {
		var hall entity.Hall
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Size,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	return halls, nil
}

func (r *hallRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM halls`).Scan(&count); err != nil {
		r.log.Error("Failed to count halls", zap.Error(err))
		return 0, fmt.Errorf("count halls: %w", err)
	}
	return count, nil
}
