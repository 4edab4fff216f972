package usecase

import (
	"context"
	"testing"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/internal/data/repository"
	"cinema-sessions/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateHall_Success(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	hallRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *entity.Hall) bool {
		return h.Name == "Red" && h.Size == 100
	})).Return(nil)

	resp, err := service.CreateHall(context.Background(), &request.HallRequest{Name: "Red", Size: 100})

	require.NoError(t, err)
	assert.Equal(t, "Red", resp.Name)
	assert.Equal(t, 100, resp.Size)
	hallRepo.AssertExpectations(t)
}

func TestCreateHall_NameTaken(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	hallRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrNameTaken)

	_, err := service.CreateHall(context.Background(), &request.HallRequest{Name: "Red", Size: 100})

	assert.ErrorIs(t, err, repository.ErrNameTaken)
}

func TestCreateHall_ValidationFails(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	_, err := service.CreateHall(context.Background(), &request.HallRequest{Name: "", Size: -1})

	assert.Error(t, err)
	hallRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateHall_BookedSessionsBlock(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	hallRepo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrBookedSessionExists)

	_, err := service.UpdateHall(context.Background(), uuid.NewString(), &request.HallRequest{Name: "Red", Size: 80})

	assert.ErrorIs(t, err, repository.ErrBookedSessionExists)
	// Business failures are final, not retried.
	hallRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestUpdateHall_InvalidID(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	_, err := service.UpdateHall(context.Background(), "not-a-uuid", &request.HallRequest{Name: "Red", Size: 80})

	assert.Error(t, err)
	hallRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetHallByID_NotFound(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	hallRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := service.GetHallByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetHalls_Pagination(t *testing.T) {
	repo, _, _, hallRepo, _, _ := newMockRepository()
	service := NewHallService(repo, zap.NewNop())

	hall := &entity.Hall{Name: "Red", Size: 100}
	hall.ID = uuid.New()

	hallRepo.On("FindAll", mock.Anything, 10, 10).Return([]*entity.Hall{hall}, nil)
	hallRepo.On("Count", mock.Anything).Return(int64(11), nil)

	resp, err := service.GetHalls(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 10})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	hallRepo.AssertExpectations(t)
}
