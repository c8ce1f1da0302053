package order

import (
	"context"
	"time"

	"eats-backend/internal/domain"
	"eats-backend/internal/events"
	"eats-backend/internal/ports/ordertx"
)

// orderRepository defines the ledger operations required by the coordinator.
type orderRepository interface {
	WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) error
	ByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error)
	ListByCourier(ctx context.Context, courierID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, from []domain.OrderStatus, deliveryTime *time.Time) (bool, error)
	AssignCourier(ctx context.Context, orderID, courierID int64) (bool, error)
	Delete(ctx context.Context, orderID int64, from []domain.OrderStatus) (bool, error)
	Exists(ctx context.Context, orderID int64) (bool, error)
}

// accountDirectory resolves account identities. Get returns nil when the
// account does not exist.
type accountDirectory interface {
	Get(ctx context.Context, id int64) (*domain.Account, error)
}

// menuSource fetches a restaurant's current menu.
type menuSource interface {
	Menu(ctx context.Context, restaurantID int64) ([]domain.Dish, error)
}

// eventPublisher emits order lifecycle events after commit.
type eventPublisher interface {
	Publish(ctx context.Context, e events.OrderEvent) error
}

type counter interface {
	Inc()
}
