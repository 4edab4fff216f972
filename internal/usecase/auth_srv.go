package usecase

import (
	"context"
	"errors"
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

// ErrInvalidCredentials reports a login attempt with an unknown
// username or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	// Login returns the user's current token, rotating it when the
	// previous one has expired.
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, rawToken string) error
}

type authService struct {
	repo        *repository.Repository
	tokenExpiry time.Duration
	log         *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:        repo,
		tokenExpiry: time.Duration(config.Auth.TokenExpiryMinutes) * time.Minute,
		log:         log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Registration validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username %s: %w", req.Username, err)
	}
	if existing != nil {
		return nil, repository.ErrNameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		PasswordHash: hash,
		Role:         entity.RoleClient,
		Wallet:       entity.DefaultWallet,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Wallet:   user.Wallet,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", req.Username, err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()

	token, err := s.repo.Token.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find token of user %s: %w", user.ID.String(), err)
	}

	if token != nil {
		if now.Sub(token.LastAction) <= s.tokenExpiry {
			if err := s.repo.Token.Touch(ctx, token.ID, now); err != nil {
				return nil, err
			}
			return &response.TokenResponse{Token: token.Token.String()}, nil
		}

		// Stale token: replace it instead of reviving it.
		if err := s.repo.Token.Delete(ctx, token.ID); err != nil {
			return nil, err
		}
	}

	token = &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:     user.ID,
		Token:      uuid.New(),
		LastAction: now,
	}
	if err := s.repo.Token.Create(ctx, token); err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.TokenResponse{Token: token.Token.String()}, nil
}

func (s *authService) Logout(ctx context.Context, rawToken string) error {
	tokenValue, err := uuid.Parse(rawToken)
	if err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}

	token, err := s.repo.Token.FindByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if token == nil {
		return repository.ErrNotFound
	}

	return s.repo.Token.Delete(ctx, token.ID)
}
