package availability

import (
	"context"
	"fmt"
	"strings"

	"eats-backend/internal/domain"
	"eats-backend/internal/events"
	"eats-backend/internal/logx"
	"eats-backend/internal/repository"
)

// Processor keeps courier availability in sync with the order stream:
// an assignment makes the courier busy, a terminal order frees them.
// Handling is idempotent, so redelivered events are harmless.
type Processor struct {
	couriers courierLedger
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor wires the processor to the accounts table.
func NewProcessor(repo *repository.AccountRepo, logger logx.Logger) *Processor {
	return newProcessor(repo, logger)
}

// NewProcessorWithDeps creates a Processor from interfaces (handy for tests).
func NewProcessorWithDeps(couriers courierLedger, logger logx.Logger) *Processor {
	return newProcessor(couriers, logger)
}

func newProcessor(couriers courierLedger, logger logx.Logger) *Processor {
	p := &Processor{couriers: couriers, logger: logger}
	p.factory = newActionFactory(p.onAssigned, p.onStatusChanged)
	return p
}

// Handle processes one order event. Events with no availability effect
// are acknowledged without action.
func (p *Processor) Handle(ctx context.Context, e events.OrderEvent) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onAssigned(ctx context.Context, e events.OrderEvent) error {
	if e.CourierID == nil {
		p.logger.Warn("assignment event without courier",
			logx.Int64("order_id", e.OrderID))
		return nil
	}
	return p.setAvailability(ctx, *e.CourierID, false, e.OrderID)
}

func (p *Processor) onStatusChanged(ctx context.Context, e events.OrderEvent) error {
	if !isTerminal(e.Status) || e.CourierID == nil {
		return nil
	}
	return p.setAvailability(ctx, *e.CourierID, true, e.OrderID)
}

func (p *Processor) setAvailability(ctx context.Context, courierID int64, available bool, orderID int64) error {
	ok, err := p.couriers.SetAvailability(ctx, courierID, available)
	if err != nil {
		return fmt.Errorf("set availability of courier %d: %w", courierID, err)
	}
	if !ok {
		// The account is gone or not a courier. Retrying cannot fix that.
		p.logger.Warn("availability update matched no courier",
			logx.Int64("courier_id", courierID),
			logx.Int64("order_id", orderID))
		return nil
	}
	p.logger.Info("courier availability updated",
		logx.Int64("courier_id", courierID),
		logx.Bool("available", available),
		logx.Int64("order_id", orderID))
	return nil
}

func isTerminal(status string) bool {
	switch domain.OrderStatus(strings.ToLower(strings.TrimSpace(status))) {
	case domain.StatusDelivered, domain.StatusCanceled:
		return true
	}
	return false
}
