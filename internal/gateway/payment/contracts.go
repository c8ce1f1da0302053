package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// CaptureStatus is the processor's verdict on a capture attempt.
type CaptureStatus string

const (
	// StatusCaptured means the amount was charged.
	StatusCaptured CaptureStatus = "captured"
	// StatusDeclined means the processor refused the charge. Declines are
	// terminal for the attempt; retrying wins nothing.
	StatusDeclined CaptureStatus = "declined"
)

// CaptureResult is the processor's answer to a capture request.
type CaptureResult struct {
	Status        CaptureStatus
	TransactionID string
	LastDigits    string
}

// Gateway charges a payment method for a fixed amount. Implementations
// must be idempotent per order: retrying a capture for the same order and
// amount must not double-charge.
type Gateway interface {
	Capture(ctx context.Context, orderID int64, amount decimal.Decimal, method string) (CaptureResult, error)
}
