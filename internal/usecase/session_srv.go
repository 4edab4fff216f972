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

type SessionService interface {
	// Admin operations
	CreateSession(ctx context.Context, req *request.SessionRequest) (*response.SessionResponse, error)
	UpdateSession(ctx context.Context, sessionID string, req *request.SessionRequest) (*response.SessionResponse, error)
	GetSessions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SessionResponse], error)

	// Client browsing
	GetSessionsByDate(ctx context.Context, date, sort string) ([]response.SessionAvailabilityResponse, error)
	GetSessionsToday(ctx context.Context, req *request.SessionsNowRequest) ([]response.SessionResponse, error)
}

type sessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		log:  log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.SessionRequest) (*response.SessionResponse, error) {
	session, err := s.parseSession(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.ID = uuid.New()
	session.CreatedAt = now
	session.UpdatedAt = now

	if err := s.saveSession(ctx, session, false); err != nil {
		return nil, err
	}

	s.log.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("hall_id", session.HallID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	resp := response.SessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, sessionID string, req *request.SessionRequest) (*response.SessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	session, err := s.parseSession(req)
	if err != nil {
		return nil, err
	}

	session.ID = id
	session.UpdatedAt = time.Now()

	if err := s.saveSession(ctx, session, true); err != nil {
		return nil, err
	}

	s.log.Info("Session updated", zap.String("session_id", sessionID))

	resp := response.SessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) GetSessions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SessionResponse], error) {
	sessions, err := s.repo.Session.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	total, err := s.repo.Session.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	sessionResponses := make([]response.SessionResponse, len(sessions))
	for i, session := range sessions {
		sessionResponses[i] = response.SessionToResponse(session)
	}

	return response.NewPaginatedResponse(sessionResponses, req.Page, req.PerPage, total), nil
}

func (s *sessionService) GetSessionsByDate(ctx context.Context, date, sort string) ([]response.SessionAvailabilityResponse, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	// Unknown sort keys fall back to the start_time ordering.
	if sort != "price" {
		sort = "start_time"
	}

	sessions, err := s.repo.Session.FindActiveOnDate(ctx, day, sort)
	if err != nil {
		return nil, fmt.Errorf("get sessions on %s: %w", date, err)
	}

	responses := make([]response.SessionAvailabilityResponse, len(sessions))
	for i, sa := range sessions {
		responses[i] = response.SessionAvailabilityToResponse(sa)
	}

	return responses, nil
}

func (s *sessionService) GetSessionsToday(ctx context.Context, req *request.SessionsNowRequest) ([]response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var filter repository.SessionFilter
	if req.HallID != nil {
		hallID, err := uuid.Parse(*req.HallID)
		if err != nil {
			return nil, fmt.Errorf("invalid hall ID format %s: %w", *req.HallID, err)
		}
		filter.HallID = &hallID
	}
	if req.From != nil {
		from, err := entity.ParseClock(*req.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if req.To != nil {
		to, err := entity.ParseClock(*req.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	sessions, err := s.repo.Session.FindActiveToday(ctx, utils.Today(), filter)
	if err != nil {
		return nil, fmt.Errorf("get today's sessions: %w", err)
	}

	responses := make([]response.SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = response.SessionToResponse(session)
	}

	return responses, nil
}

// parseSession validates the request and converts it into a session
// entity without identity or timestamps.
func (s *sessionService) parseSession(req *request.SessionRequest) (*entity.Session, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hallID, err := uuid.Parse(req.HallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", req.HallID, err)
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	startTime, err := entity.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := entity.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	return &entity.Session{
		HallID:    hallID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Price:     req.Price,
	}, nil
}

// saveSession runs the range sanity check and then the collision-
// checked save, retrying the transaction on conflict.
func (s *sessionService) saveSession(ctx context.Context, session *entity.Session, isUpdate bool) error {
	if err := checkDateRange(session, utils.Today()); err != nil {
		monitoring.SessionRejected(rejectReason(err))
		return err
	}

	err := withTxRetry(s.log, func() error {
		return s.repo.Session.Save(ctx, session, isUpdate)
	})
	if err != nil {
		monitoring.SessionRejected(rejectReason(err))
		return err
	}

	monitoring.SessionSaved()
	return nil
}

// checkDateRange rejects a reversed range, a zero-length same-day
// window and a range that already ended before today.
func checkDateRange(session *entity.Session, today time.Time) error {
	if session.StartDate.After(session.EndDate) {
		return repository.ErrIncorrectDateRange
	}
	if session.StartDate.Equal(session.EndDate) && session.StartTime >= session.EndTime {
		return repository.ErrIncorrectDateRange
	}
	if session.EndDate.Before(today) {
		return repository.ErrIncorrectDateRange
	}
	return nil
}
