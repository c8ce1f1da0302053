package ordertx

import (
	"context"

	"eats-backend/internal/domain"
)

// Repository is the transaction-scoped slice of the order ledger. Every
// write performed through it belongs to one database transaction: the
// order row, its line items and the payment record commit or roll back
// together.
type Repository interface {
	InsertOrder(ctx context.Context, o *domain.Order) error
	InsertItems(ctx context.Context, orderID int64, items []domain.OrderItem) error
	InsertPayment(ctx context.Context, p *domain.Payment) error
}
