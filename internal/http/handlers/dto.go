package handlers

import "time"

type orderItemRequest struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int   `json:"quantity"`
}

type createOrderRequest struct {
	ClientID      int64              `json:"client_id"`
	RestaurantID  int64              `json:"restaurant_id"`
	Items         []orderItemRequest `json:"items"`
	Description   *string            `json:"description,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
}

type changeStatusRequest struct {
	Status    string `json:"status"`
	CourierID *int64 `json:"courier_id,omitempty"`
}

type assignCourierRequest struct {
	CourierID int64 `json:"courier_id"`
}

type orderItemDTO struct {
	MenuID          int64  `json:"menu_id"`
	Quantity        int    `json:"quantity"`
	Price           string `json:"price"`
	DishName        string `json:"dish_name"`
	DishDescription string `json:"dish_description,omitempty"`
}

type orderDTO struct {
	ID           int64          `json:"id"`
	ClientID     int64          `json:"client_id"`
	RestaurantID int64          `json:"restaurant_id"`
	CourierID    *int64         `json:"courier_id,omitempty"`
	Items        []orderItemDTO `json:"items"`
	TotalCost    string         `json:"total_cost"`
	Status       string         `json:"status"`
	OrderTime    time.Time      `json:"order_time"`
	DeliveryTime *time.Time     `json:"delivery_time,omitempty"`
	Description  *string        `json:"description,omitempty"`
}

type createDishRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

type updateDishRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
}

type dishDTO struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price"`
}

type registerRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`

	Address *string `json:"address,omitempty"`

	City        *string `json:"city,omitempty"`
	Street      *string `json:"street,omitempty"`
	Building    *string `json:"building,omitempty"`
	Description *string `json:"description,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Street      *string `json:"street,omitempty"`
	Building    *string `json:"building,omitempty"`
	Description *string `json:"description,omitempty"`
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

type accountDTO struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`

	Address *string `json:"address,omitempty"`

	City        *string `json:"city,omitempty"`
	Street      *string `json:"street,omitempty"`
	Building    *string `json:"building,omitempty"`
	Description *string `json:"description,omitempty"`

	Available *bool `json:"available,omitempty"`
}
