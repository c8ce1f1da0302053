package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
)

const accountColumns = `id, role, email, password_hash, name, phone, blocked,
	address, city, street, building, description, available, created_at`

// AccountRepo owns identity records for clients, restaurants and couriers.
type AccountRepo struct{ db *pgxpool.Pool }

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(db *pgxpool.Pool) *AccountRepo { return &AccountRepo{db: db} }

func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Role, &a.Email, &a.PasswordHash, &a.Name, &a.Phone,
		&a.Blocked, &a.Address, &a.City, &a.Street, &a.Building, &a.Description,
		&a.Available, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Get returns an account by its ID, or nil when it does not exist.
func (r *AccountRepo) Get(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return a, nil
}

// GetByEmail returns an account by email, or nil when it does not exist.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return a, nil
}

// Create persists a new account and returns its generated ID.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO accounts (role, email, password_hash, name, phone,
            address, city, street, building, description, available)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `, a.Role, a.Email, a.PasswordHash, a.Name, a.Phone,
		a.Address, a.City, a.Street, a.Building, a.Description, a.Available).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update and returns true if a row was affected.
func (r *AccountRepo) UpdatePartial(ctx context.Context, u domain.PartialAccountUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE accounts
        SET
            name        = COALESCE($2, name),
            phone       = COALESCE($3, phone),
            address     = COALESCE($4, address),
            city        = COALESCE($5, city),
            street      = COALESCE($6, street),
            building    = COALESCE($7, building),
            description = COALESCE($8, description)
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.Address, u.City, u.Street, u.Building, u.Description)
	if err != nil {
		return false, fmt.Errorf("update account %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetBlocked flips the block flag and returns true if a row was affected.
func (r *AccountRepo) SetBlocked(ctx context.Context, id int64, blocked bool) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE accounts SET blocked = $2 WHERE id = $1`, id, blocked)
	if err != nil {
		return false, fmt.Errorf("set blocked for account %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetAvailability updates a courier's work flag. The role predicate keeps
// the flag meaningless for non-courier accounts.
func (r *AccountRepo) SetAvailability(ctx context.Context, id int64, available bool) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE accounts SET available = $2 WHERE id = $1 AND role = 'courier'`,
		id, available)
	if err != nil {
		return false, fmt.Errorf("set availability for courier %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
