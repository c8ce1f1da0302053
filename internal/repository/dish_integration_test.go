//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"eats-backend/internal/domain"
	"eats-backend/internal/repository"
)

type DishRepositorySuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *repository.DishRepo
	accounts *repository.AccountRepo

	restaurantID int64
	otherID      int64
}

func (s *DishRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewDishRepo(tcPool)
	s.accounts = repository.NewAccountRepo(tcPool)
}

func (s *DishRepositorySuite) SetupTest() {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx,
		`TRUNCATE accounts, dishes RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)

	s.restaurantID, err = s.accounts.Create(ctx, &domain.Account{
		Role:         domain.RoleRestaurant,
		Email:        "pizzeria@example.com",
		PasswordHash: "h",
		Name:         "Pizzeria",
	})
	s.Require().NoError(err)

	s.otherID, err = s.accounts.Create(ctx, &domain.Account{
		Role:         domain.RoleRestaurant,
		Email:        "sushi@example.com",
		PasswordHash: "h",
		Name:         "Sushi Bar",
	})
	s.Require().NoError(err)
}

func (s *DishRepositorySuite) addDish(restaurantID int64, name, price string) int64 {
	id, err := s.repo.Create(context.Background(), &domain.Dish{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
	})
	s.Require().NoError(err)
	return id
}

func (s *DishRepositorySuite) TestMenu_ScopedToRestaurant() {
	ctx := context.Background()

	s.addDish(s.restaurantID, "Margherita", "9.50")
	s.addDish(s.restaurantID, "Tiramisu", "6.25")
	s.addDish(s.otherID, "Nigiri", "4.00")

	menu, err := s.repo.Menu(ctx, s.restaurantID)
	s.Require().NoError(err)
	s.Require().Len(menu, 2)
	s.Equal("Margherita", menu[0].Name)
	s.Equal("Tiramisu", menu[1].Name)
	s.True(menu[0].Price.Equal(decimal.RequireFromString("9.50")))

	empty, err := s.repo.Menu(ctx, 9999)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *DishRepositorySuite) TestGet() {
	ctx := context.Background()

	id := s.addDish(s.restaurantID, "Carbonara", "11.00")

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(s.restaurantID, got.RestaurantID)
	s.Equal("Carbonara", got.Name)

	missing, err := s.repo.Get(ctx, 9999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *DishRepositorySuite) TestUpdatePartial_OwnershipAndCoalesce() {
	ctx := context.Background()

	id := s.addDish(s.restaurantID, "Lasagna", "10.00")

	newPrice := decimal.RequireFromString("12.50")
	ok, err := s.repo.UpdatePartial(ctx, domain.PartialDishUpdate{
		ID:           id,
		RestaurantID: s.restaurantID,
		Price:        &newPrice,
	})
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("Lasagna", got.Name, "untouched fields keep their values")
	s.True(got.Price.Equal(newPrice))

	// A different restaurant cannot reach this dish.
	name := "Hijacked"
	ok, err = s.repo.UpdatePartial(ctx, domain.PartialDishUpdate{
		ID:           id,
		RestaurantID: s.otherID,
		Name:         &name,
	})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *DishRepositorySuite) TestDelete_OwnershipScoped() {
	ctx := context.Background()

	id := s.addDish(s.restaurantID, "Bruschetta", "5.00")

	ok, err := s.repo.Delete(ctx, s.otherID, id)
	s.Require().NoError(err)
	s.False(ok, "foreign restaurant must not delete the dish")

	ok, err = s.repo.Delete(ctx, s.restaurantID, id)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Nil(got)
}

func TestDishRepositorySuite(t *testing.T) {
	suite.Run(t, new(DishRepositorySuite))
}
