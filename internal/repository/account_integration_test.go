//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
	"eats-backend/internal/repository"
)

type AccountRepositorySuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.AccountRepo
}

func (s *AccountRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewAccountRepo(tcPool)
}

func (s *AccountRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE accounts RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *AccountRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	address := "Baker st. 221b"
	in := &domain.Account{
		Role:         domain.RoleClient,
		Email:        "anna@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Anna",
		Phone:        "+70000000000",
		Address:      &address,
	}

	id, err := s.repo.Create(ctx, in)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(id, got.ID)
	s.Equal(domain.RoleClient, got.Role)
	s.Equal(in.Email, got.Email)
	s.Require().NotNil(got.Address)
	s.Equal(address, *got.Address)
	s.Nil(got.Available)
	s.False(got.Blocked)
}

func (s *AccountRepositorySuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()

	in := &domain.Account{
		Role:         domain.RoleClient,
		Email:        "taken@example.com",
		PasswordHash: "h",
		Name:         "First",
	}
	_, err := s.repo.Create(ctx, in)
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, &domain.Account{
		Role:         domain.RoleRestaurant,
		Email:        "taken@example.com",
		PasswordHash: "h",
		Name:         "Second",
	})
	s.ErrorIs(err, apperr.ErrConflict)
}

func (s *AccountRepositorySuite) TestGetByEmail_Missing() {
	got, err := s.repo.GetByEmail(context.Background(), "ghost@example.com")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *AccountRepositorySuite) TestUpdatePartial_TouchesOnlyGivenFields() {
	ctx := context.Background()

	city := "Milan"
	id, err := s.repo.Create(ctx, &domain.Account{
		Role:         domain.RoleRestaurant,
		Email:        "trattoria@example.com",
		PasswordHash: "h",
		Name:         "Trattoria",
		City:         &city,
	})
	s.Require().NoError(err)

	newPhone := "+71111111111"
	ok, err := s.repo.UpdatePartial(ctx, domain.PartialAccountUpdate{
		ID:    id,
		Phone: &newPhone,
	})
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(newPhone, got.Phone)
	s.Equal("Trattoria", got.Name)
	s.Require().NotNil(got.City)
	s.Equal(city, *got.City)
}

func (s *AccountRepositorySuite) TestSetBlocked() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, &domain.Account{
		Role:         domain.RoleClient,
		Email:        "block@example.com",
		PasswordHash: "h",
		Name:         "B",
	})
	s.Require().NoError(err)

	ok, err := s.repo.SetBlocked(ctx, id, true)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.True(got.Blocked)

	ok, err = s.repo.SetBlocked(ctx, 9999, true)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *AccountRepositorySuite) TestSetAvailability_OnlyForCouriers() {
	ctx := context.Background()

	available := true
	courierID, err := s.repo.Create(ctx, &domain.Account{
		Role:         domain.RoleCourier,
		Email:        "pete@example.com",
		PasswordHash: "h",
		Name:         "Pete",
		Available:    &available,
	})
	s.Require().NoError(err)

	clientID, err := s.repo.Create(ctx, &domain.Account{
		Role:         domain.RoleClient,
		Email:        "anna@example.com",
		PasswordHash: "h",
		Name:         "Anna",
	})
	s.Require().NoError(err)

	ok, err := s.repo.SetAvailability(ctx, courierID, false)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.repo.Get(ctx, courierID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Available)
	s.False(*got.Available)

	ok, err = s.repo.SetAvailability(ctx, clientID, true)
	s.Require().NoError(err)
	s.False(ok, "a client has no availability flag")
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}
