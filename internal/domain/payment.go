package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the outcome of a capture attempt.
type PaymentStatus string

const (
	PaymentCaptured PaymentStatus = "captured"
	PaymentFailed   PaymentStatus = "failed"
)

// Payment records a capture against exactly one order (1:1). A payment row
// exists only for orders whose creation transaction committed.
type Payment struct {
	ID          int64
	OrderID     int64
	ClientID    int64
	Amount      decimal.Decimal
	Status      PaymentStatus
	ProcessorID string
	LastDigits  string
	PaymentTime time.Time
}
