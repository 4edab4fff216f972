package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/internal/dto/request"
	"cinema-sessions/internal/dto/response"
	"cinema-sessions/pkg/monitoring"
	"cinema-sessions/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Book reserves places on a session for one date, debiting the
	// user's wallet.
	Book(ctx context.Context, userID, sessionID, date string, req *request.BookingRequest) (*response.BookingResponse, error)
	// GetFreePlaces reports how many places remain on a session for a
	// date.
	GetFreePlaces(ctx context.Context, sessionID, date string) (int, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.UserBookingsResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Book(ctx context.Context, userID, sessionID, date string, req *request.BookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	sID, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Session.FindByID(ctx, sID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, repository.ErrNotFound
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		SessionID: sID,
		UserID:    uID,
		Date:      day,
		Places:    req.Places,
	}

	err = withTxRetry(s.log, func() error {
		return s.repo.Booking.CreateAtomic(ctx, booking, utils.Today())
	})
	if err != nil {
		monitoring.BookingRejected(rejectReason(err))
		return nil, err
	}

	monitoring.BookingCreated()
	s.log.Info("Session booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", sessionID),
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.Int("places", booking.Places),
	)

	// UnitPrice is the price the transaction debited, which may differ
	// from the earlier read when the session was repriced in between.
	return &response.BookingResponse{
		ID:        booking.ID.String(),
		SessionID: sessionID,
		Date:      date,
		Places:    booking.Places,
		TotalCost: booking.UnitPrice * int64(booking.Places),
		CreatedAt: booking.CreatedAt,
	}, nil
}

func (s *bookingService) GetFreePlaces(ctx context.Context, sessionID, date string) (int, error) {
	sID, err := uuid.Parse(sessionID)
	if err != nil {
		return 0, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return 0, err
	}

	session, err := s.repo.Session.FindByID(ctx, sID)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, repository.ErrNotFound
	}
	if !session.ActiveOn(day) {
		return 0, repository.ErrIncorrectBookingDate
	}

	hall, err := s.repo.Hall.FindByID(ctx, session.HallID)
	if err != nil {
		return 0, err
	}
	if hall == nil {
		return 0, repository.ErrNotFound
	}

	taken, err := s.repo.Booking.SumPlaces(ctx, sID, day)
	if err != nil {
		return 0, err
	}

	return hall.Size - taken, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.UserBookingsResponse, error) {
	uID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, uID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, uID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	spent, err := s.repo.Booking.TotalSpentByUserID(ctx, uID)
	if err != nil {
		return nil, fmt.Errorf("sum spending: %w", err)
	}

	bookingResponses := make([]response.UserBookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.UserBookingToResponse(booking)
	}

	return &response.UserBookingsResponse{
		Bookings:   bookingResponses,
		TotalSpent: spent,
		Pagination: response.NewPaginationMeta(req.Page, req.PerPage, total),
	}, nil
}
