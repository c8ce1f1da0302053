package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"eats-backend/internal/domain"
	"eats-backend/internal/ports/ordertx"
)

// OrderRepo owns order, order item and payment records.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// WithTx opens a transaction and executes fn within it. Any error from fn
// rolls the whole transaction back; only a clean return commits.
func (r *OrderRepo) WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo is the transaction-scoped order ledger.
type TxRepo struct {
	tx pgx.Tx
}

var _ ordertx.Repository = (*TxRepo)(nil)

// InsertOrder inserts the order row and fills in its generated ID and
// order time.
func (r *TxRepo) InsertOrder(ctx context.Context, o *domain.Order) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO orders (client_id, restaurant_id, total_cost, status, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, order_time
    `, o.ClientID, o.RestaurantID, o.TotalCost, string(o.Status), o.Description).
		Scan(&o.ID, &o.OrderTime)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertItems bulk-inserts the order's line items with their price
// snapshots and fills in generated IDs.
func (r *TxRepo) InsertItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	batch := &pgx.Batch{}
	for i := range items {
		batch.Queue(`
            INSERT INTO order_items (order_id, menu_id, quantity, price)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `, orderID, items[i].MenuID, items[i].Quantity, items[i].Price)
	}

	results := r.tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			return fmt.Errorf("insert order item %d: %w", items[i].MenuID, err)
		}
		items[i].OrderID = orderID
	}
	return nil
}

// InsertPayment inserts the payment record linked to the order.
func (r *TxRepo) InsertPayment(ctx context.Context, p *domain.Payment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO payments (order_id, client_id, amount, status, processor_id, last_digits, payment_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, p.OrderID, p.ClientID, p.Amount, string(p.Status), p.ProcessorID, p.LastDigits, p.PaymentTime).
		Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert payment for order %d: %w", p.OrderID, err)
	}
	return nil
}

const orderSelect = `
    SELECT o.id, o.client_id, o.restaurant_id, o.courier_id, o.order_time,
           o.total_cost, o.status, o.delivery_time, o.description,
           oi.id, oi.menu_id, oi.quantity, oi.price,
           COALESCE(d.name, ''), COALESCE(d.description, '')
    FROM orders o
    LEFT JOIN order_items oi ON oi.order_id = o.id
    LEFT JOIN dishes d ON d.id = oi.menu_id`

// ByID returns an order with its nested items, or nil when it does not
// exist. Dish names come from a display join and may be empty for dishes
// discontinued after the order was placed.
func (r *OrderRepo) ByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := r.queryOrders(ctx, orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// ListByClient returns a client's orders, newest first.
func (r *OrderRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx,
		orderSelect+` WHERE o.client_id = $1 ORDER BY o.order_time DESC, o.id DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("orders for client %d: %w", clientID, err)
	}
	return orders, nil
}

// ListByRestaurant returns orders addressed to a restaurant, newest first.
func (r *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx,
		orderSelect+` WHERE o.restaurant_id = $1 ORDER BY o.order_time DESC, o.id DESC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("orders for restaurant %d: %w", restaurantID, err)
	}
	return orders, nil
}

// ListByCourier returns orders assigned to a courier, newest first.
func (r *OrderRepo) ListByCourier(ctx context.Context, courierID int64) ([]domain.Order, error) {
	orders, err := r.queryOrders(ctx,
		orderSelect+` WHERE o.courier_id = $1 ORDER BY o.order_time DESC, o.id DESC`, courierID)
	if err != nil {
		return nil, fmt.Errorf("orders for courier %d: %w", courierID, err)
	}
	return orders, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			o        domain.Order
			itemID   *int64
			menuID   *int64
			quantity *int
			price    *decimal.Decimal
			dishName string
			dishDesc string
		)
		err := rows.Scan(&o.ID, &o.ClientID, &o.RestaurantID, &o.CourierID, &o.OrderTime,
			&o.TotalCost, &o.Status, &o.DeliveryTime, &o.Description,
			&itemID, &menuID, &quantity, &price, &dishName, &dishDesc)
		if err != nil {
			return nil, err
		}

		pos, seen := index[o.ID]
		if !seen {
			o.Items = make([]domain.OrderItem, 0, 4)
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}
		if itemID != nil {
			orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
				ID:              *itemID,
				OrderID:         o.ID,
				MenuID:          *menuID,
				Quantity:        *quantity,
				Price:           *price,
				DishName:        dishName,
				DishDescription: dishDesc,
			})
		}
	}
	return orders, rows.Err()
}

// UpdateStatus conditionally moves an order to status, only when its
// current status is one of from. deliveryTime is stamped for deliveries
// and must be nil otherwise. Returns true if a row was updated.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, from []domain.OrderStatus, deliveryTime *time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = $2, delivery_time = COALESCE($3, delivery_time)
        WHERE id = $1 AND status = ANY($4)
    `, orderID, string(status), deliveryTime, statusStrings(from))
	if err != nil {
		return false, fmt.Errorf("update status of order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// AssignCourier sets the courier and moves the order to in_delivery in a
// single conditional update, valid only from confirmed.
func (r *OrderRepo) AssignCourier(ctx context.Context, orderID, courierID int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET courier_id = $2, status = $3
        WHERE id = $1 AND status = $4
    `, orderID, courierID, string(domain.StatusInDelivery), string(domain.StatusConfirmed))
	if err != nil {
		return false, fmt.Errorf("assign courier to order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes an order, conditionally on its current status. Line
// items and the payment row cascade.
func (r *OrderRepo) Delete(ctx context.Context, orderID int64, from []domain.OrderStatus) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM orders WHERE id = $1 AND status = ANY($2)`,
		orderID, statusStrings(from))
	if err != nil {
		return false, fmt.Errorf("delete order %d: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Exists reports whether an order row exists. Used to tell a lost
// conditional update (Conflict) from a missing order (NotFound).
func (r *OrderRepo) Exists(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order %d: %w", orderID, err)
	}
	return exists, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
