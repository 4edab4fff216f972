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

type BookingRepository interface {
	// CreateAtomic books places for one date as a single transaction:
	// date-range check, capacity re-read, wallet debit and the booking
	// insert either all commit or none do. today is the caller's
	// notion of the current date.
	CreateAtomic(ctx context.Context, booking *entity.Booking, today time.Time) error
	// SumPlaces returns the total places already booked for one
	// session on one date, 0 when none exist.
	SumPlaces(ctx context.Context, sessionID uuid.UUID, date time.Time) (int, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UserBooking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	TotalSpentByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateAtomic(ctx context.Context, booking *entity.Booking, today time.Time) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the session row: serializes the capacity re-read for
		// this session against concurrent bookings, so two requests
		// cannot both pass the check and jointly oversell.
		var session entity.Session
		err := tx.QueryRow(ctx, `
			SELECT id, hall_id, start_date, end_date, start_time, end_time, price
			FROM sessions
			WHERE id = $1
			FOR UPDATE
		`, booking.SessionID).Scan(
			&session.ID,
			&session.HallID,
			&session.StartDate,
			&session.EndDate,
			&session.StartTime,
			&session.EndTime,
			&session.Price,
		)
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock session %s: %w", booking.SessionID.String(), err)
		}

		if !session.ActiveOn(booking.Date) {
			return ErrIncorrectBookingDate
		}
		if booking.Date.Before(today) {
			return ErrDateExpired
		}

		var hallSize int
		err = tx.QueryRow(ctx, `SELECT size FROM halls WHERE id = $1`, session.HallID).Scan(&hallSize)
		if err != nil {
			return fmt.Errorf("find hall %s: %w", session.HallID.String(), err)
		}

		var taken int
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(places), 0)
			FROM bookings
			WHERE session_id = $1 AND date = $2
		`, booking.SessionID, booking.Date).Scan(&taken)
		if err != nil {
			return fmt.Errorf("sum booked places: %w", err)
		}
		if taken+booking.Places > hallSize {
			return ErrNoFreePlaces
		}

		booking.UnitPrice = session.Price
		cost := session.Price * int64(booking.Places)

		var wallet int64
		err = tx.QueryRow(ctx, `SELECT wallet FROM users WHERE id = $1 FOR UPDATE`, booking.UserID).Scan(&wallet)
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user %s: %w", booking.UserID.String(), err)
		}
		if wallet < cost {
			return ErrNotEnoughMoney
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET wallet = wallet - $2, updated_at = $3 WHERE id = $1
		`, booking.UserID, cost, booking.CreatedAt)
		if err != nil {
			return fmt.Errorf("debit wallet of user %s: %w", booking.UserID.String(), err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO bookings (id, session_id, user_id, date, places, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			booking.ID,
			booking.SessionID,
			booking.UserID,
			booking.Date,
			booking.Places,
			booking.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
		}

		return nil
	})

	if err != nil {
		switch err {
		case ErrNotFound, ErrIncorrectBookingDate, ErrDateExpired, ErrNoFreePlaces, ErrNotEnoughMoney:
		default:
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("session_id", booking.SessionID.String()),
				zap.String("user_id", booking.UserID.String()),
				zap.Int("places", booking.Places),
			)
		}
	}

	return err
}

func (r *bookingRepository) SumPlaces(ctx context.Context, sessionID uuid.UUID, date time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(places), 0)
		FROM bookings
		WHERE session_id = $1 AND date = $2
	`

	var sum int
	if err := r.db.QueryRow(ctx, query, sessionID, date).Scan(&sum); err != nil {
		r.log.Error("Failed to sum booked places",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return 0, fmt.Errorf("sum booked places for session %s: %w", sessionID.String(), err)
	}

	return sum, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UserBooking, error) {
	query := `
		SELECT b.id, b.session_id, b.user_id, b.date, b.places, b.created_at,
		       s.start_time, s.end_time, s.price
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.UserBooking
	for rows.Next() {
		var booking entity.UserBooking
		err := rows.Scan(
			&booking.ID,
			&booking.SessionID,
			&booking.UserID,
			&booking.Date,
			&booking.Places,
			&booking.CreatedAt,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Price,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) TotalSpentByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(b.places * s.price), 0)
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		WHERE b.user_id = $1
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to sum user spending",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("sum spending of user %s: %w", userID.String(), err)
	}

	return total, nil
}
