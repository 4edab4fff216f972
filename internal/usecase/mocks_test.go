package usecase

import (
	"context"
	"time"

	"cinema-sessions/internal/data/entity"
	"cinema-sessions/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock implementations of the repository interfaces.

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, token *entity.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) FindByToken(ctx context.Context, token uuid.UUID) (*entity.AuthToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *mockTokenRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *mockTokenRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockHallRepo struct {
	mock.Mock
}

func (m *mockHallRepo) Create(ctx context.Context, hall *entity.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *mockHallRepo) Update(ctx context.Context, hall *entity.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *mockHallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Hall), args.Error(1)
}

func (m *mockHallRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Hall, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Hall), args.Error(1)
}

func (m *mockHallRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Save(ctx context.Context, session *entity.Session, isUpdate bool) error {
	args := m.Called(ctx, session, isUpdate)
	return args.Error(0)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *mockSessionRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Session, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Session), args.Error(1)
}

func (m *mockSessionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepo) FindActiveOnDate(ctx context.Context, date time.Time, sort string) ([]*entity.SessionAvailability, error) {
	args := m.Called(ctx, date, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SessionAvailability), args.Error(1)
}

func (m *mockSessionRepo) FindActiveToday(ctx context.Context, today time.Time, filter repository.SessionFilter) ([]*entity.Session, error) {
	args := m.Called(ctx, today, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Session), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CreateAtomic(ctx context.Context, booking *entity.Booking, today time.Time) error {
	args := m.Called(ctx, booking, today)
	return args.Error(0)
}

func (m *mockBookingRepo) SumPlaces(ctx context.Context, sessionID uuid.UUID, date time.Time) (int, error) {
	args := m.Called(ctx, sessionID, date)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.UserBooking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserBooking), args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) TotalSpentByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockTokenRepo, *mockHallRepo, *mockSessionRepo, *mockBookingRepo) {
	userRepo := new(mockUserRepo)
	tokenRepo := new(mockTokenRepo)
	hallRepo := new(mockHallRepo)
	sessionRepo := new(mockSessionRepo)
	bookingRepo := new(mockBookingRepo)

	repo := &repository.Repository{
		User:    userRepo,
		Token:   tokenRepo,
		Hall:    hallRepo,
		Session: sessionRepo,
		Booking: bookingRepo,
	}

	return repo, userRepo, tokenRepo, hallRepo, sessionRepo, bookingRepo
}
