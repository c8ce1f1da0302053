package menu

import (
	"context"

	"eats-backend/internal/domain"
)

// dishRepository is the persistent menu store. Mutations are scoped to
// the owning restaurant; an update or delete reports false when no row
// matched.
type dishRepository interface {
	Menu(ctx context.Context, restaurantID int64) ([]domain.Dish, error)
	Get(ctx context.Context, id int64) (*domain.Dish, error)
	Create(ctx context.Context, d *domain.Dish) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDishUpdate) (bool, error)
	Delete(ctx context.Context, restaurantID, dishID int64) (bool, error)
}

// accountDirectory resolves accounts; Get returns nil when missing.
type accountDirectory interface {
	Get(ctx context.Context, id int64) (*domain.Account, error)
}

// menuCache is the optional read-through cache in front of the store.
type menuCache interface {
	Get(ctx context.Context, restaurantID int64) ([]domain.Dish, bool)
	Set(ctx context.Context, restaurantID int64, dishes []domain.Dish) error
	Invalidate(ctx context.Context, restaurantID int64) error
}
