package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// order_items.menu_id is deliberately not a foreign key: deleting a dish
// must never touch the frozen line items of historical orders.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            BIGSERIAL PRIMARY KEY,
		role          TEXT NOT NULL CHECK (role IN ('client', 'restaurant', 'courier')),
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		blocked       BOOLEAN NOT NULL DEFAULT FALSE,
		address       TEXT,
		city          TEXT,
		street        TEXT,
		building      TEXT,
		description   TEXT,
		available     BOOLEAN,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id            BIGSERIAL PRIMARY KEY,
		restaurant_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		price         NUMERIC(12,2) NOT NULL CHECK (price > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dishes_restaurant ON dishes(restaurant_id)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            BIGSERIAL PRIMARY KEY,
		client_id     BIGINT NOT NULL REFERENCES accounts(id),
		restaurant_id BIGINT NOT NULL REFERENCES accounts(id),
		courier_id    BIGINT REFERENCES accounts(id),
		order_time    TIMESTAMPTZ NOT NULL DEFAULT now(),
		total_cost    NUMERIC(12,2) NOT NULL,
		status        TEXT NOT NULL,
		delivery_time TIMESTAMPTZ,
		description   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_courier ON orders(courier_id)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id       BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_id  BIGINT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		price    NUMERIC(12,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id           BIGSERIAL PRIMARY KEY,
		order_id     BIGINT NOT NULL UNIQUE REFERENCES orders(id) ON DELETE CASCADE,
		client_id    BIGINT NOT NULL,
		amount       NUMERIC(12,2) NOT NULL,
		status       TEXT NOT NULL,
		processor_id TEXT NOT NULL,
		last_digits  TEXT NOT NULL DEFAULT '',
		payment_time TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema. Statements are idempotent, so repeated
// startups are safe.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
