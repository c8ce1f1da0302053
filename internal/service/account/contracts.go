package account

import (
	"context"

	"eats-backend/internal/domain"
)

// accountRepository is the persistent account store. Lookups return nil
// when no account matches; mutations report false for a missing row.
type accountRepository interface {
	Get(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialAccountUpdate) (bool, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (bool, error)
	SetAvailability(ctx context.Context, id int64, available bool) (bool, error)
}
