package availability

import (
	"context"
	"strings"

	"eats-backend/internal/events"
)

type actionFunc func(context.Context, events.OrderEvent) error

// actionFactory maps event types to their handlers. Unknown types map to
// nothing and are acknowledged upstream.
type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onAssigned, onStatusChanged actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			events.TypeCourierAssigned: onAssigned,
			events.TypeStatusChanged:   onStatusChanged,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	fn, ok := f.byType[strings.ToLower(strings.TrimSpace(eventType))]
	return fn, ok
}
