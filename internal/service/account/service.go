package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
	"eats-backend/internal/logx"
)

const minPasswordLength = 8

// Service handles account registration, credential checks and profile
// maintenance for all three marketplace roles.
type Service struct {
	repo             accountRepository
	logger           logx.Logger
	operationTimeout time.Duration
	hashCost         int
}

func NewService(repo accountRepository, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		repo:             repo,
		logger:           logger,
		operationTimeout: timeout,
		hashCost:         bcrypt.DefaultCost,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// RegisterInput is the account creation payload. Role-specific fields
// are honored only for the matching role.
type RegisterInput struct {
	Role     domain.Role
	Email    string
	Password string
	Name     string
	Phone    string

	Address *string

	City        *string
	Street      *string
	Building    *string
	Description *string
}

func (in RegisterInput) validate() error {
	if !in.Role.Valid() {
		return fmt.Errorf("unknown role %q: %w", in.Role, apperr.ErrInvalid)
	}
	if !domain.ValidateEmail(in.Email) {
		return fmt.Errorf("malformed email %q: %w", in.Email, apperr.ErrInvalid)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLength, apperr.ErrInvalid)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", apperr.ErrInvalid)
	}
	return nil
}

// Register creates an account with a hashed password. A taken email
// yields ErrConflict. New couriers start out available.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	// Validate the email in the form it will be stored in.
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &domain.Account{
		Role:         in.Role,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
	}
	switch in.Role {
	case domain.RoleClient:
		acc.Address = in.Address
	case domain.RoleRestaurant:
		acc.City = in.City
		acc.Street = in.Street
		acc.Building = in.Building
		acc.Description = in.Description
	case domain.RoleCourier:
		available := true
		acc.Available = &available
	}

	id, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, err
	}
	acc.ID = id

	s.logger.Info("account registered",
		logx.Int64("account_id", id),
		logx.String("role", string(in.Role)),
	)
	return acc, nil
}

// Authenticate checks a credential pair. Bad email and bad password are
// indistinguishable to the caller. A blocked account cannot sign in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	acc, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("bad credentials: %w", apperr.ErrInvalid)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("bad credentials: %w", apperr.ErrInvalid)
	}
	if acc.Blocked {
		return nil, fmt.Errorf("account %d is blocked: %w", acc.ID, apperr.ErrForbidden)
	}
	return acc, nil
}

// Get returns one account by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("account %d: %w", id, apperr.ErrNotFound)
	}
	return acc, nil
}

// Update applies a partial profile update and returns the fresh record.
func (s *Service) Update(ctx context.Context, upd domain.PartialAccountUpdate) (*domain.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", apperr.ErrInvalid)
	}

	ok, err := s.repo.UpdatePartial(ctx, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("account %d: %w", upd.ID, apperr.ErrNotFound)
	}
	return s.repo.Get(ctx, upd.ID)
}

// SetBlocked flips the moderation flag on an account.
func (s *Service) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.SetBlocked(ctx, id, blocked)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("account %d: %w", id, apperr.ErrNotFound)
	}
	s.logger.Info("account block flag changed",
		logx.Int64("account_id", id),
		logx.Bool("blocked", blocked),
	)
	return nil
}

// SetAvailability marks a courier as ready (or not) for assignments.
// Only couriers have the flag; anyone else is ErrNotFound.
func (s *Service) SetAvailability(ctx context.Context, courierID int64, available bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.SetAvailability(ctx, courierID, available)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
	}
	return nil
}
