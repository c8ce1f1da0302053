package availability

import "context"

// courierLedger is the subset of account persistence the processor needs
// to flip a courier's availability flag.
type courierLedger interface {
	SetAvailability(ctx context.Context, courierID int64, available bool) (bool, error)
}
