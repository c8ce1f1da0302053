package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a client order placed with a restaurant.
type Order struct {
	ID           int64
	ClientID     int64
	RestaurantID int64
	CourierID    *int64
	Items        []OrderItem
	TotalCost    decimal.Decimal
	Status       OrderStatus
	OrderTime    time.Time
	DeliveryTime *time.Time
	Description  *string
}

// OrderItem is one ordered dish position within an order. Price is the
// unit price captured at order time; it never follows later menu edits.
type OrderItem struct {
	ID       int64
	OrderID  int64
	MenuID   int64
	Quantity int
	Price    decimal.Decimal

	// Display fields resolved from the dishes table on read paths.
	// Empty when the dish has since been discontinued.
	DishName        string
	DishDescription string
}

// LineTotal returns the item's contribution to the order total.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
