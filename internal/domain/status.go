package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of possible order statuses
const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInDelivery OrderStatus = "in_delivery"
	StatusDelivered  OrderStatus = "delivered"
	StatusCanceled   OrderStatus = "canceled"
)

// List of allowed statuses
var allowedOrderStatuses = [...]OrderStatus{
	StatusPending, StatusConfirmed, StatusInDelivery, StatusDelivered, StatusCanceled,
}

// transitionsTo maps a target status to the statuses an order may leave from.
// StatusPending is absent: orders enter it only at creation.
var transitionsTo = map[OrderStatus][]OrderStatus{
	StatusConfirmed:  {StatusPending},
	StatusInDelivery: {StatusConfirmed},
	StatusDelivered:  {StatusInDelivery},
	StatusCanceled:   {StatusPending, StatusConfirmed},
}

// deletableStatuses lists the states in which a client may still hard-delete
// an order. Once a restaurant confirms, the order is part of history.
var deletableStatuses = []OrderStatus{StatusPending, StatusCanceled}

// Valid checks if the OrderStatus is a known status.
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TransitionsTo returns the statuses from which target is reachable.
// An empty slice means target is never a valid transition destination.
func TransitionsTo(target OrderStatus) []OrderStatus {
	prior := transitionsTo[target]
	out := make([]OrderStatus, len(prior))
	copy(out, prior)
	return out
}

// DeletableStatuses returns the statuses in which an order may be deleted.
func DeletableStatuses() []OrderStatus {
	out := make([]OrderStatus, len(deletableStatuses))
	copy(out, deletableStatuses)
	return out
}
