package domain

import "github.com/shopspring/decimal"

// Dish is a menu position owned by exactly one restaurant. Dishes are
// mutable independently of historical orders: order items copy the price.
type Dish struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Price        decimal.Decimal
}

// PartialDishUpdate carries optional fields to update a dish.
// A nil field means "do not change" that attribute.
type PartialDishUpdate struct {
	ID           int64
	RestaurantID int64
	Name         *string
	Description  *string
	Price        *decimal.Decimal
}
