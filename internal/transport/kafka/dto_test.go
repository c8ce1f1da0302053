package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eats-backend/internal/events"
	"eats-backend/internal/transport/kafka"
)

func TestToEvent_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	courier := int64(3)

	dto := kafka.EventDTO{
		Type:       "  courier_assigned  ",
		OrderID:    42,
		Status:     "  in_delivery  ",
		CourierID:  &courier,
		TotalCost:  "19.00",
		OccurredAt: ts,
	}

	got := kafka.ToEvent(dto)

	require.Equal(t, events.OrderEvent{
		Type:       "courier_assigned",
		OrderID:    42,
		Status:     "in_delivery",
		CourierID:  &courier,
		TotalCost:  "19.00",
		OccurredAt: ts,
	}, got)
}
