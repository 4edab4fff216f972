package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/internal/dto/request"
	"cinema-sessions/internal/dto/response"
	"cinema-sessions/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error)
	GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error)
	GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error)
}

type hallService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		Size: req.Size,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		return nil, err
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("size", hall.Size),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) UpdateHall(ctx context.Context, hallID string, req *request.HallRequest) (*response.HallResponse, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", hallID, err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hall := &entity.Hall{
		Base: entity.Base{
			ID:        id,
			UpdatedAt: time.Now(),
		},
		Name: req.Name,
		Size: req.Size,
	}

	err = withTxRetry(s.log, func() error {
		return s.repo.Hall.Update(ctx, hall)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Hall updated", zap.String("hall_id", hallID))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error) {
	halls, err := s.repo.Hall.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	total, err := s.repo.Hall.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count halls: %w", err)
	}

	hallResponses := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		hallResponses[i] = response.HallToResponse(hall)
	}

	return response.NewPaginatedResponse(hallResponses, req.Page, req.PerPage, total), nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID format %s: %w", hallID, err)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, repository.ErrNotFound
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}
