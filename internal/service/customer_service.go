package service

import (
	"context"
	"fmt"

	"cakeshop/internal/model"
	"cakeshop/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 12

// customerService implements CustomerService.
type customerService struct {
	repo   repository.CustomerRepository
	logger zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		repo:   repo,
		logger: logger.With().Str("service", "customer").Logger(),
	}
}

func (s *customerService) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, int64, error) {
	customers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return customers, total, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if c == nil {
		return nil, model.NewNotFoundError("customer not found")
	}
	return c, nil
}

// Create validates uniqueness of email and phone and stores the customer
// with a bcrypt-hashed password.
func (s *customerService) Create(ctx context.Context, payload model.CustomerCreate) (*model.Customer, error) {
	if payload.Email == "" {
		return nil, model.NewValidationError("customer email is required")
	}
	if payload.Password == "" {
		return nil, model.NewValidationError("customer password is required")
	}
	if payload.FullName == "" {
		return nil, model.NewValidationError("customer full name is required")
	}
	if payload.Status == "" {
		payload.Status = model.CustomerStatusActive
	}

	exists, err := s.repo.EmailExists(ctx, payload.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.NewConflictError("customer email already exists")
	}

	if payload.Phone != nil {
		exists, err = s.repo.PhoneExists(ctx, *payload.Phone, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return nil, model.NewConflictError("customer phone already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	payload.Password = string(hash)

	c, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customer_id", c.ID).Msg("customer created")
	return c, nil
}

// Update writes only the supplied fields, hashing the password when present
// and re-checking email/phone uniqueness against other rows.
func (s *customerService) Update(ctx context.Context, id int64, payload model.CustomerUpdate) (*model.Customer, error) {
	if payload.Email != nil {
		exists, err := s.repo.EmailExists(ctx, *payload.Email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, model.NewConflictError("customer email already exists")
		}
	}
	if payload.Phone != nil {
		exists, err := s.repo.PhoneExists(ctx, *payload.Phone, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return nil, model.NewConflictError("customer phone already exists")
		}
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		payload.Password = &hashed
	}

	c, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.NewNotFoundError("customer not found")
	}
	return c, nil
}

// Delete removes a customer. The repository's referential guard rejects the
// delete with a conflict while the customer has orders.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.NewNotFoundError("customer not found")
	}
	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}

// Authenticate verifies the email/password pair and stamps last_login.
// Lookup misses and bad passwords both report the same validation error so
// the response does not reveal which part was wrong.
func (s *customerService) Authenticate(ctx context.Context, email, password string) (*model.Customer, error) {
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if c == nil {
		return nil, model.NewValidationError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)); err != nil {
		s.logger.Warn().Int64("customer_id", c.ID).Msg("failed login attempt")
		return nil, model.NewValidationError("invalid email or password")
	}

	if err := s.repo.UpdateLastLogin(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Statistics(ctx context.Context) (*model.CustomerStatistics, error) {
	return s.repo.Statistics(ctx)
}
