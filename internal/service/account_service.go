package service

import (
	"context"
	"fmt"

	"cakeshop/internal/model"
	"cakeshop/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// accountService implements AccountService.
type accountService struct {
	repo   repository.AccountRepository
	logger zerolog.Logger
}

// NewAccountService creates a new staff account service.
func NewAccountService(repo repository.AccountRepository, logger zerolog.Logger) AccountService {
	return &accountService{
		repo:   repo,
		logger: logger.With().Str("service", "account").Logger(),
	}
}

func (s *accountService) List(ctx context.Context) ([]model.Account, error) {
	return s.repo.List(ctx)
}

// Create stores a staff account with a bcrypt-hashed password.
func (s *accountService) Create(ctx context.Context, payload model.AccountCreate) (*model.Account, error) {
	if payload.Username == "" {
		return nil, model.NewValidationError("account username is required")
	}
	if payload.Email == "" {
		return nil, model.NewValidationError("account email is required")
	}
	if payload.Password == "" {
		return nil, model.NewValidationError("account password is required")
	}
	if payload.Role == "" {
		payload.Role = model.RoleStaff
	}
	if payload.Role != model.RoleAdmin && payload.Role != model.RoleStaff {
		return nil, model.NewValidationError("invalid account role")
	}
	if payload.Status == "" {
		payload.Status = "active"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	payload.Password = string(hash)

	a, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("account_id", a.ID).Str("role", a.Role).Msg("account created")
	return a, nil
}

// Authenticate verifies a staff username/password pair.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*model.Account, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if a == nil {
		return nil, model.NewValidationError("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		s.logger.Warn().Int64("account_id", a.ID).Msg("failed staff login attempt")
		return nil, model.NewValidationError("invalid username or password")
	}
	return a, nil
}
