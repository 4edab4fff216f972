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

// SessionFilter narrows the active-today listing.
type SessionFilter struct {
	HallID *uuid.UUID
	From   *entity.Clock
	To     *entity.Clock
}

type SessionRepository interface {
	// Save inserts or updates a session after the collision scan. The
	// whole check-then-write runs in one transaction serialized per
	// hall, so two concurrent saves cannot both pass the scan.
	Save(ctx context.Context, session *entity.Session, isUpdate bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Session, error)
	Count(ctx context.Context) (int64, error)
	// FindActiveOnDate lists sessions whose date range covers date,
	// each with the free places left for that exact date.
	FindActiveOnDate(ctx context.Context, date time.Time, sort string) ([]*entity.SessionAvailability, error)
	// FindActiveToday lists sessions running on the given day,
	// optionally narrowed to a hall and a start-time range.
	FindActiveToday(ctx context.Context, today time.Time, filter SessionFilter) ([]*entity.Session, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session, isUpdate bool) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the hall row: the critical section for scheduling is
		// keyed by hall, every save for the same hall queues up here.
		var hallID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, session.HallID).Scan(&hallID)
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock hall %s: %w", session.HallID.String(), err)
		}

		if isUpdate {
			// Lock the session row too: a booking transaction holds it
			// while inserting, so the bookings check below waits for
			// any in-flight booking to commit or roll back.
			var sessionID uuid.UUID
			err = tx.QueryRow(ctx, `SELECT id FROM sessions WHERE id = $1 FOR UPDATE`, session.ID).Scan(&sessionID)
			if err == pgx.ErrNoRows {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("lock session %s: %w", session.ID.String(), err)
			}

			var booked bool
			err = tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM bookings WHERE session_id = $1)`,
				session.ID).Scan(&booked)
			if err != nil {
				return fmt.Errorf("check bookings for session %s: %w", session.ID.String(), err)
			}
			if booked {
				return ErrBookedSessionExists
			}
		}

		// Candidates share the hall and overlap the date range. The
		// time windows are compared pairwise in Go because of the
		// midnight-wrap cases.
		rows, err := tx.Query(ctx, `
			SELECT id, hall_id, start_date, end_date, start_time, end_time, price, created_at, updated_at
			FROM sessions
			WHERE hall_id = $1 AND start_date <= $2 AND end_date >= $3 AND id <> $4
		`, session.HallID, session.EndDate, session.StartDate, session.ID)
		if err != nil {
			return fmt.Errorf("find candidate sessions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var other entity.Session
			err := rows.Scan(
				&other.ID,
				&other.HallID,
				&other.StartDate,
				&other.EndDate,
				&other.StartTime,
				&other.EndTime,
				&other.Price,
				&other.CreatedAt,
				&other.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("scan session row: %w", err)
			}
			if session.CollidesWith(&other) {
				return ErrSessionsCollide
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate candidate sessions: %w", err)
		}
		rows.Close()

		if isUpdate {
			result, err := tx.Exec(ctx, `
				UPDATE sessions
				SET hall_id = $2, start_date = $3, end_date = $4,
				    start_time = $5, end_time = $6, price = $7, updated_at = $8
				WHERE id = $1
			`,
				session.ID,
				session.HallID,
				session.StartDate,
				session.EndDate,
				session.StartTime,
				session.EndTime,
				session.Price,
				session.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("update session %s: %w", session.ID.String(), err)
			}
			if result.RowsAffected() == 0 {
				return ErrNotFound
			}
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO sessions (id, hall_id, start_date, end_date, start_time, end_time, price, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			session.ID,
			session.HallID,
			session.StartDate,
			session.EndDate,
			session.StartTime,
			session.EndTime,
			session.Price,
			session.CreatedAt,
			session.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create session %s: %w", session.ID.String(), err)
		}
		return nil
	})

	if err != nil {
		switch err {
		case ErrNotFound, ErrBookedSessionExists, ErrSessionsCollide:
		default:
			r.log.Error("Failed to save session",
				zap.Error(err),
				zap.String("session_id", session.ID.String()),
				zap.String("hall_id", session.HallID.String()),
				zap.Bool("is_update", isUpdate),
			)
		}
	}

	return err
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, hall_id, start_date, end_date, start_time, end_time, price, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.HallID,
		&session.StartDate,
		&session.EndDate,
		&session.StartTime,
		&session.EndTime,
		&session.Price,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find session by ID %s: %w", id.String(), err)
	}

	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Session, error) {
	query := `
		SELECT id, hall_id, start_date, end_date, start_time, end_time, price, created_at, updated_at
		FROM sessions
		ORDER BY start_date, start_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list sessions", zap.Error(err))
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (r *sessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		r.log.Error("Failed to count sessions", zap.Error(err))
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (r *sessionRepository) FindActiveOnDate(ctx context.Context, date time.Time, sort string) ([]*entity.SessionAvailability, error) {
	// sort is whitelisted by the caller; it never comes raw from the
	// request.
	orderBy := "s.start_time"
	if sort == "price" {
		orderBy = "s.price"
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.hall_id, s.start_date, s.end_date, s.start_time, s.end_time, s.price,
		       s.created_at, s.updated_at,
		       h.size - COALESCE(SUM(b.places), 0) AS free_places
		FROM sessions s
		JOIN halls h ON h.id = s.hall_id
		LEFT JOIN bookings b ON b.session_id = s.id AND b.date = $1
		WHERE s.start_date <= $1 AND s.end_date >= $1
		GROUP BY s.id, h.size
		ORDER BY %s
	`, orderBy)

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to list sessions by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("list sessions on %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var sessions []*entity.SessionAvailability
	for rows.Next() {
		var sa entity.SessionAvailability
		err := rows.Scan(
			&sa.ID,
			&sa.HallID,
			&sa.StartDate,
			&sa.EndDate,
			&sa.StartTime,
			&sa.EndTime,
			&sa.Price,
			&sa.CreatedAt,
			&sa.UpdatedAt,
			&sa.FreePlaces,
		)
		if err != nil {
			r.log.Error("Failed to scan session availability row", zap.Error(err))
			return nil, fmt.Errorf("scan session availability row: %w", err)
		}
		sessions = append(sessions, &sa)
	}

	return sessions, nil
}

func (r *sessionRepository) FindActiveToday(ctx context.Context, today time.Time, filter SessionFilter) ([]*entity.Session, error) {
	query := `
		SELECT id, hall_id, start_date, end_date, start_time, end_time, price, created_at, updated_at
		FROM sessions
		WHERE start_date <= $1 AND end_date >= $1
	`
	args := []any{today}

	if filter.HallID != nil {
		args = append(args, *filter.HallID)
		query += fmt.Sprintf(" AND hall_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	query += " ORDER BY start_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list today's sessions", zap.Error(err))
		return nil, fmt.Errorf("list today's sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]*entity.Session, error) {
	var sessions []*entity.Session
	for rows.Next() {
		var session entity.Session
		err := rows.Scan(
			&session.ID,
			&session.HallID,
			&session.StartDate,
			&session.EndDate,
			&session.StartTime,
			&session.EndTime,
			&session.Price,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}
