package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
	"eats-backend/internal/logx"
)

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q: %w", raw, apperr.ErrInvalid)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price must be positive: %w", apperr.ErrInvalid)
	}
	return price.Round(2), nil
}

// Service manages restaurant menus. Reads go through the cache when one
// is configured; every mutation invalidates the owning restaurant's
// cached menu.
type Service struct {
	dishes           dishRepository
	accounts         accountDirectory
	cache            menuCache
	logger           logx.Logger
	operationTimeout time.Duration
}

func NewService(
	dishes dishRepository,
	accounts accountDirectory,
	cache menuCache,
	logger logx.Logger,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		dishes:           dishes,
		accounts:         accounts,
		cache:            cache,
		logger:           logger,
		operationTimeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// restaurant loads an account and insists it is a restaurant.
func (s *Service) restaurant(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Role != domain.RoleRestaurant {
		return nil, fmt.Errorf("restaurant %d: %w", id, apperr.ErrNotFound)
	}
	return acc, nil
}

// Menu returns a restaurant's current menu, cache first.
func (s *Service) Menu(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.restaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if dishes, ok := s.cache.Get(ctx, restaurantID); ok {
			return dishes, nil
		}
	}

	dishes, err := s.dishes.Menu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, restaurantID, dishes); err != nil {
			s.logger.Warn("menu cache set failed",
				logx.Int64("restaurant_id", restaurantID), logx.Err(err))
		}
	}
	return dishes, nil
}

// DishInput is the payload for adding a dish.
type DishInput struct {
	Name        string
	Description string
	Price       string
}

func (in DishInput) parse(restaurantID int64) (*domain.Dish, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("dish name is required: %w", apperr.ErrInvalid)
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Dish{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
	}, nil
}

// AddDish puts a new dish on the acting restaurant's menu.
func (s *Service) AddDish(ctx context.Context, restaurantID int64, in DishInput) (*domain.Dish, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	acc, err := s.restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if acc.Blocked {
		return nil, fmt.Errorf("account %d is blocked: %w", restaurantID, apperr.ErrForbidden)
	}

	dish, err := in.parse(restaurantID)
	if err != nil {
		return nil, err
	}

	id, err := s.dishes.Create(ctx, dish)
	if err != nil {
		return nil, err
	}
	dish.ID = id

	s.invalidate(ctx, restaurantID)
	s.logger.Info("dish added",
		logx.Int64("restaurant_id", restaurantID),
		logx.Int64("dish_id", id),
	)
	return dish, nil
}

// DishUpdate carries optional changes; empty strings mean "leave as is".
type DishUpdate struct {
	Name        *string
	Description *string
	Price       *string
}

// UpdateDish changes a dish the acting restaurant owns. Touching another
// restaurant's dish is refused.
func (s *Service) UpdateDish(ctx context.Context, restaurantID, dishID int64, in DishUpdate) (*domain.Dish, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.restaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	upd := domain.PartialDishUpdate{ID: dishID, RestaurantID: restaurantID}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("dish name cannot be empty: %w", apperr.ErrInvalid)
		}
		upd.Name = &name
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		upd.Description = &desc
	}
	if in.Price != nil {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		upd.Price = &price
	}

	ok, err := s.dishes.UpdatePartial(ctx, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyMiss(ctx, dishID, restaurantID)
	}

	s.invalidate(ctx, restaurantID)
	return s.dishes.Get(ctx, dishID)
}

// DeleteDish removes a dish from the acting restaurant's menu.
func (s *Service) DeleteDish(ctx context.Context, restaurantID, dishID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.restaurant(ctx, restaurantID); err != nil {
		return err
	}

	ok, err := s.dishes.Delete(ctx, restaurantID, dishID)
	if err != nil {
		return err
	}
	if !ok {
		return s.classifyMiss(ctx, dishID, restaurantID)
	}

	s.invalidate(ctx, restaurantID)
	s.logger.Info("dish deleted",
		logx.Int64("restaurant_id", restaurantID),
		logx.Int64("dish_id", dishID),
	)
	return nil
}

// classifyMiss explains a zero-row mutation: the dish is gone, or it
// belongs to somebody else.
func (s *Service) classifyMiss(ctx context.Context, dishID, restaurantID int64) error {
	dish, err := s.dishes.Get(ctx, dishID)
	if err != nil {
		return err
	}
	if dish == nil {
		return fmt.Errorf("dish %d: %w", dishID, apperr.ErrNotFound)
	}
	return fmt.Errorf("dish %d is not owned by restaurant %d: %w",
		dishID, restaurantID, apperr.ErrForbidden)
}

func (s *Service) invalidate(ctx context.Context, restaurantID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, restaurantID); err != nil {
		s.logger.Warn("menu cache invalidate failed",
			logx.Int64("restaurant_id", restaurantID), logx.Err(err))
	}
}
