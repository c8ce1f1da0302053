package handlers

import (
	"context"

	"eats-backend/internal/domain"
	"eats-backend/internal/service/account"
	"eats-backend/internal/service/menu"
	"eats-backend/internal/service/order"
)

type orderUsecase interface {
	CreateOrder(ctx context.Context, clientID int64, in order.CreateOrderInput) (*domain.Order, error)
	OrderByID(ctx context.Context, id int64) (*domain.Order, error)
	OrdersFor(ctx context.Context, role domain.Role, id int64) ([]domain.Order, error)
	ChangeStatus(ctx context.Context, orderID int64, status domain.OrderStatus, actingCourierID *int64) (*domain.Order, error)
	AssignCourier(ctx context.Context, orderID, courierID int64) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

// NewOrderUsecase wires the order coordinator into its HTTP contract.
func NewOrderUsecase(svc *order.Service) orderUsecase {
	return svc
}

type menuUsecase interface {
	Menu(ctx context.Context, restaurantID int64) ([]domain.Dish, error)
	AddDish(ctx context.Context, restaurantID int64, in menu.DishInput) (*domain.Dish, error)
	UpdateDish(ctx context.Context, restaurantID, dishID int64, in menu.DishUpdate) (*domain.Dish, error)
	DeleteDish(ctx context.Context, restaurantID, dishID int64) error
}

// NewMenuUsecase wires the menu service into its HTTP contract.
func NewMenuUsecase(svc *menu.Service) menuUsecase {
	return svc
}

type accountUsecase interface {
	Register(ctx context.Context, in account.RegisterInput) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	Update(ctx context.Context, upd domain.PartialAccountUpdate) (*domain.Account, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	SetAvailability(ctx context.Context, courierID int64, available bool) error
}

// NewAccountUsecase wires the account service into its HTTP contract.
func NewAccountUsecase(svc *account.Service) accountUsecase {
	return svc
}
