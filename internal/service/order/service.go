package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
	"eats-backend/internal/events"
	"eats-backend/internal/gateway/payment"
	"eats-backend/internal/logx"
	"eats-backend/internal/ports/ordertx"
)

const defaultPaymentMethod = "card"

// Service is the order coordinator. It owns order creation and every
// lifecycle transition, orchestrating the menu store, the order ledger
// and the payment gateway through constructor-injected handles.
type Service struct {
	repo             orderRepository
	accounts         accountDirectory
	menu             menuSource
	gateway          payment.Gateway
	publisher        eventPublisher
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time

	ordersCreated counter
	captures      *prometheus.CounterVec
}

// NewService creates and configures the order coordinator.
func NewService(
	repo orderRepository,
	accounts accountDirectory,
	menu menuSource,
	gateway payment.Gateway,
	publisher eventPublisher,
	logger logx.Logger,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		repo:             repo,
		accounts:         accounts,
		menu:             menu,
		gateway:          gateway,
		publisher:        publisher,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics attaches optional prometheus counters: one for created
// orders and a vector of capture outcomes (captured, declined, error).
func (s *Service) WithMetrics(created counter, captures *prometheus.CounterVec) *Service {
	s.ordersCreated = created
	s.captures = captures
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func (s *Service) countCapture(outcome string) {
	if s.captures != nil {
		s.captures.WithLabelValues(outcome).Inc()
	}
}

// CreateItem is one requested dish position.
type CreateItem struct {
	MenuID   int64
	Quantity int
}

// CreateOrderInput carries the order creation payload.
type CreateOrderInput struct {
	RestaurantID  int64
	Items         []CreateItem
	Description   *string
	PaymentMethod string
}

func validateCreate(in CreateOrderInput) error {
	if in.RestaurantID <= 0 {
		return fmt.Errorf("restaurant id is required: %w", apperr.ErrInvalid)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("order needs at least one item: %w", apperr.ErrInvalid)
	}
	for _, it := range in.Items {
		if it.MenuID <= 0 || it.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive: %w", it.MenuID, apperr.ErrInvalid)
		}
	}
	return nil
}

// CreateOrder validates the requested items against the restaurant's
// current menu, prices the order, and persists order, line items and
// payment in one transaction. The payment capture happens inside the
// transaction: a decline rolls everything back, leaving zero rows.
func (s *Service) CreateOrder(ctx context.Context, clientID int64, in CreateOrderInput) (*domain.Order, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	client, err := s.accounts.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Role != domain.RoleClient {
		return nil, fmt.Errorf("client %d: %w", clientID, apperr.ErrNotFound)
	}
	if client.Blocked {
		return nil, fmt.Errorf("account %d is blocked: %w", clientID, apperr.ErrForbidden)
	}

	restaurant, err := s.accounts.Get(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil || restaurant.Role != domain.RoleRestaurant {
		return nil, fmt.Errorf("restaurant %d: %w", in.RestaurantID, apperr.ErrNotFound)
	}

	menu, err := s.menu.Menu(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Dish, len(menu))
	for _, d := range menu {
		byID[d.ID] = d
	}

	var missing []string
	for _, it := range in.Items {
		if _, ok := byID[it.MenuID]; !ok {
			missing = append(missing, strconv.FormatInt(it.MenuID, 10))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dishes not on the menu: %s: %w",
			strings.Join(missing, ", "), apperr.ErrInvalid)
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		dish := byID[it.MenuID]
		items = append(items, domain.OrderItem{
			MenuID:          it.MenuID,
			Quantity:        it.Quantity,
			Price:           dish.Price,
			DishName:        dish.Name,
			DishDescription: dish.Description,
		})
		total = total.Add(dish.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	method := in.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	ord := &domain.Order{
		ClientID:     clientID,
		RestaurantID: in.RestaurantID,
		Items:        items,
		TotalCost:    total.Round(2),
		Status:       domain.StatusPending,
		Description:  in.Description,
	}

	err = s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		if err := tx.InsertOrder(ctx, ord); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, ord.ID, ord.Items); err != nil {
			return err
		}

		res, err := s.gateway.Capture(ctx, ord.ID, ord.TotalCost, method)
		if err != nil {
			s.countCapture("error")
			return fmt.Errorf("capture for order %d: %w", ord.ID, err)
		}
		if res.Status != payment.StatusCaptured {
			s.countCapture("declined")
			return fmt.Errorf("processor declined order %d: %w", ord.ID, apperr.ErrPaymentFailed)
		}
		s.countCapture("captured")

		return tx.InsertPayment(ctx, &domain.Payment{
			OrderID:     ord.ID,
			ClientID:    clientID,
			Amount:      ord.TotalCost,
			Status:      domain.PaymentCaptured,
			ProcessorID: res.TransactionID,
			LastDigits:  res.LastDigits,
			PaymentTime: s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	if s.ordersCreated != nil {
		s.ordersCreated.Inc()
	}
	s.publish(ctx, events.OrderEvent{
		Type:      events.TypeOrderCreated,
		OrderID:   ord.ID,
		Status:    string(ord.Status),
		TotalCost: ord.TotalCost.StringFixed(2),
	})
	s.logger.Info("order created",
		logx.Int64("order_id", ord.ID),
		logx.Int64("client_id", clientID),
		logx.Int64("restaurant_id", in.RestaurantID),
		logx.String("total_cost", ord.TotalCost.StringFixed(2)),
	)
	return ord, nil
}

// OrderByID returns an order with its nested line items.
func (s *Service) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ord, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	return ord, nil
}

// OrdersFor lists orders scoped to one side of the marketplace.
func (s *Service) OrdersFor(ctx context.Context, role domain.Role, id int64) ([]domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	switch role {
	case domain.RoleClient:
		return s.repo.ListByClient(ctx, id)
	case domain.RoleRestaurant:
		return s.repo.ListByRestaurant(ctx, id)
	case domain.RoleCourier:
		return s.repo.ListByCourier(ctx, id)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, apperr.ErrInvalid)
	}
}

// ChangeStatus moves an order along the lifecycle. The update is
// conditional on the order still being in a status that is allowed to
// transition into newStatus; losing that race yields ErrConflict. When an
// acting courier is supplied it must be the order's assigned courier.
func (s *Service) ChangeStatus(ctx context.Context, orderID int64, newStatus domain.OrderStatus, actingCourierID *int64) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", newStatus, apperr.ErrInvalid)
	}
	prior := domain.TransitionsTo(newStatus)
	if len(prior) == 0 {
		return nil, fmt.Errorf("orders cannot move to %q: %w", newStatus, apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ord, err := s.repo.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
	}
	if actingCourierID != nil {
		if ord.CourierID == nil || *ord.CourierID != *actingCourierID {
			return nil, fmt.Errorf("order %d is not assigned to courier %d: %w",
				orderID, *actingCourierID, apperr.ErrForbidden)
		}
	}

	var deliveryTime *time.Time
	if newStatus == domain.StatusDelivered {
		t := s.now()
		deliveryTime = &t
	}

	ok, err := s.repo.UpdateStatus(ctx, orderID, newStatus, prior, deliveryTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %d is not in a state allowing %q: %w",
			orderID, newStatus, apperr.ErrConflict)
	}

	updated, err := s.repo.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var eventCourier *int64
	if updated != nil {
		eventCourier = updated.CourierID
	}
	s.publish(ctx, events.OrderEvent{
		Type:      events.TypeStatusChanged,
		OrderID:   orderID,
		Status:    string(newStatus),
		CourierID: eventCourier,
	})
	s.logger.Info("order status changed",
		logx.Int64("order_id", orderID),
		logx.String("status", string(newStatus)),
	)
	return updated, nil
}

// AssignCourier puts an available courier on a confirmed order and moves
// it to in_delivery in one conditional update. Concurrent assignments
// resolve to exactly one winner; the loser gets ErrConflict.
func (s *Service) AssignCourier(ctx context.Context, orderID, courierID int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	courier, err := s.accounts.Get(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if courier == nil || courier.Role != domain.RoleCourier {
		return nil, fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
	}
	if courier.Blocked {
		return nil, fmt.Errorf("courier %d is blocked: %w", courierID, apperr.ErrForbidden)
	}
	if courier.Available == nil || !*courier.Available {
		return nil, fmt.Errorf("courier %d is not available: %w", courierID, apperr.ErrConflict)
	}

	ok, err := s.repo.AssignCourier(ctx, orderID, courierID)
	if err != nil {
		return nil, err
	}
	if !ok {
		exists, err := s.repo.Exists(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("order %d is not confirmed: %w", orderID, apperr.ErrConflict)
	}

	updated, err := s.repo.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.OrderEvent{
		Type:      events.TypeCourierAssigned,
		OrderID:   orderID,
		Status:    string(domain.StatusInDelivery),
		CourierID: &courierID,
	})
	s.logger.Info("courier assigned",
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", courierID),
	)
	return updated, nil
}

// DeleteOrder removes an order while it is still deletable: pending or
// already canceled. Confirmed-or-later orders are history and stay.
func (s *Service) DeleteOrder(ctx context.Context, orderID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Delete(ctx, orderID, domain.DeletableStatuses())
	if err != nil {
		return err
	}
	if !ok {
		exists, err := s.repo.Exists(ctx, orderID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		return fmt.Errorf("order %d can no longer be deleted: %w", orderID, apperr.ErrForbidden)
	}

	s.publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderDeleted,
		OrderID: orderID,
	})
	s.logger.Info("order deleted", logx.Int64("order_id", orderID))
	return nil
}

// publish emits an event best effort. Events are advisory; a broker
// fault must not fail a request whose transaction already committed.
func (s *Service) publish(ctx context.Context, e events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Error("order event publish failed",
			logx.String("type", e.Type),
			logx.Int64("order_id", e.OrderID),
			logx.Err(err),
		)
	}
}
