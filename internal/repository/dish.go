package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eats-backend/internal/domain"
)

// DishRepo owns dish records per restaurant.
type DishRepo struct{ db *pgxpool.Pool }

// NewDishRepo creates a new DishRepo.
func NewDishRepo(db *pgxpool.Pool) *DishRepo { return &DishRepo{db: db} }

// Menu returns all dishes of a restaurant. The slice is possibly empty,
// never nil.
func (r *DishRepo) Menu(ctx context.Context, restaurantID int64) ([]domain.Dish, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, restaurant_id, name, description, price
        FROM dishes
        WHERE restaurant_id = $1
        ORDER BY id
    `, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("menu for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	out := make([]domain.Dish, 0)
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.Price); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns a dish by its ID, or nil when it does not exist.
func (r *DishRepo) Get(ctx context.Context, id int64) (*domain.Dish, error) {
	var d domain.Dish
	err := r.db.QueryRow(ctx, `
        SELECT id, restaurant_id, name, description, price
        FROM dishes WHERE id = $1
    `, id).Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.Price)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dish %d: %w", id, err)
	}
	return &d, nil
}

// Create persists a new dish and returns its generated ID.
func (r *DishRepo) Create(ctx context.Context, d *domain.Dish) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO dishes (restaurant_id, name, description, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, d.RestaurantID, d.Name, d.Description, d.Price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create dish: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update scoped to the owning restaurant.
// Returns true if a row was affected; false also when the dish exists but
// belongs to a different restaurant.
func (r *DishRepo) UpdatePartial(ctx context.Context, u domain.PartialDishUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE dishes
        SET
            name        = COALESCE($3, name),
            description = COALESCE($4, description),
            price       = COALESCE($5, price)
        WHERE id = $1 AND restaurant_id = $2
    `, u.ID, u.RestaurantID, u.Name, u.Description, u.Price)
	if err != nil {
		return false, fmt.Errorf("update dish %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes a dish scoped to the owning restaurant. Historical order
// items keep their copied prices; nothing cascades.
func (r *DishRepo) Delete(ctx context.Context, restaurantID, dishID int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM dishes WHERE id = $1 AND restaurant_id = $2`, dishID, restaurantID)
	if err != nil {
		return false, fmt.Errorf("delete dish %d: %w", dishID, err)
	}
	return ct.RowsAffected() > 0, nil
}
