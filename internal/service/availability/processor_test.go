package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"eats-backend/internal/events"
	testlog "eats-backend/internal/testutil"
)

type fakeLedger struct {
	setFn func(ctx context.Context, courierID int64, available bool) (bool, error)

	calls []availabilityCall
}

type availabilityCall struct {
	courierID int64
	available bool
}

func (f *fakeLedger) SetAvailability(ctx context.Context, courierID int64, available bool) (bool, error) {
	f.calls = append(f.calls, availabilityCall{courierID: courierID, available: available})
	if f.setFn != nil {
		return f.setFn(ctx, courierID, available)
	}
	return true, nil
}

func courierPtr(id int64) *int64 { return &id }

func TestHandle_AssignmentMakesCourierBusy(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	p := NewProcessorWithDeps(ledger, testlog.New().Logger())

	err := p.Handle(context.Background(), events.OrderEvent{
		Type:      events.TypeCourierAssigned,
		OrderID:   7,
		CourierID: courierPtr(3),
	})
	require.NoError(t, err)
	require.Equal(t, []availabilityCall{{courierID: 3, available: false}}, ledger.calls)
}

func TestHandle_TerminalStatusFreesCourier(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"delivered", "canceled", "  Delivered "} {
		ledger := &fakeLedger{}
		p := NewProcessorWithDeps(ledger, testlog.New().Logger())

		err := p.Handle(context.Background(), events.OrderEvent{
			Type:      events.TypeStatusChanged,
			OrderID:   7,
			Status:    status,
			CourierID: courierPtr(3),
		})
		require.NoError(t, err)
		require.Equal(t, []availabilityCall{{courierID: 3, available: true}}, ledger.calls,
			"status %q must free the courier", status)
	}
}

func TestHandle_NonTerminalStatusIsIgnored(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	p := NewProcessorWithDeps(ledger, testlog.New().Logger())

	err := p.Handle(context.Background(), events.OrderEvent{
		Type:      events.TypeStatusChanged,
		OrderID:   7,
		Status:    "confirmed",
		CourierID: courierPtr(3),
	})
	require.NoError(t, err)
	require.Empty(t, ledger.calls)
}

func TestHandle_EventsWithoutCourierAreAcknowledged(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	rec := testlog.New()
	p := NewProcessorWithDeps(ledger, rec.Logger())

	err := p.Handle(context.Background(), events.OrderEvent{
		Type:    events.TypeCourierAssigned,
		OrderID: 7,
	})
	require.NoError(t, err)
	require.Empty(t, ledger.calls)

	err = p.Handle(context.Background(), events.OrderEvent{
		Type:    events.TypeStatusChanged,
		OrderID: 7,
		Status:  "delivered",
	})
	require.NoError(t, err)
	require.Empty(t, ledger.calls)
}

func TestHandle_UnknownTypesAndMissingCouriersDoNotError(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{
		setFn: func(context.Context, int64, bool) (bool, error) { return false, nil },
	}
	rec := testlog.New()
	p := NewProcessorWithDeps(ledger, rec.Logger())

	require.NoError(t, p.Handle(context.Background(), events.OrderEvent{
		Type: events.TypeOrderCreated, OrderID: 7,
	}))
	require.Empty(t, ledger.calls)

	// A vanished courier account is logged, not retried.
	require.NoError(t, p.Handle(context.Background(), events.OrderEvent{
		Type:      events.TypeCourierAssigned,
		OrderID:   7,
		CourierID: courierPtr(99),
	}))
	require.Len(t, ledger.calls, 1)

	require.True(t, rec.HasLevel("warn"))
}

func TestHandle_StorageErrorPropagatesForRedelivery(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("connection reset")
	ledger := &fakeLedger{
		setFn: func(context.Context, int64, bool) (bool, error) { return false, sentinel },
	}
	p := NewProcessorWithDeps(ledger, testlog.New().Logger())

	err := p.Handle(context.Background(), events.OrderEvent{
		Type:      events.TypeCourierAssigned,
		OrderID:   7,
		CourierID: courierPtr(3),
	})
	require.ErrorIs(t, err, sentinel)
}
