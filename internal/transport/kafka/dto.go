package kafka

import (
	"strings"
	"time"

	"eats-backend/internal/events"
)

// EventDTO mirrors the order-event wire JSON. It is decoded separately
// from events.OrderEvent so producer struct changes surface here instead
// of silently reshaping consumed messages.
type EventDTO struct {
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	CourierID  *int64    `json:"courier_id"`
	TotalCost  string    `json:"total_cost"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToEvent converts the DTO into an order event.
func ToEvent(dto EventDTO) events.OrderEvent {
	return events.OrderEvent{
		Type:       strings.TrimSpace(dto.Type),
		OrderID:    dto.OrderID,
		Status:     strings.TrimSpace(dto.Status),
		CourierID:  dto.CourierID,
		TotalCost:  dto.TotalCost,
		OccurredAt: dto.OccurredAt,
	}
}
