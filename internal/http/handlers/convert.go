package handlers

import (
	"eats-backend/internal/domain"
	"eats-backend/internal/service/account"
	"eats-backend/internal/service/order"
)

func (r createOrderRequest) toInput() order.CreateOrderInput {
	items := make([]order.CreateItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, order.CreateItem{MenuID: it.MenuID, Quantity: it.Quantity})
	}
	return order.CreateOrderInput{
		RestaurantID:  r.RestaurantID,
		Items:         items,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
	}
}

func orderToResponse(o domain.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			MenuID:          it.MenuID,
			Quantity:        it.Quantity,
			Price:           it.Price.StringFixed(2),
			DishName:        it.DishName,
			DishDescription: it.DishDescription,
		})
	}
	return orderDTO{
		ID:           o.ID,
		ClientID:     o.ClientID,
		RestaurantID: o.RestaurantID,
		CourierID:    o.CourierID,
		Items:        items,
		TotalCost:    o.TotalCost.StringFixed(2),
		Status:       string(o.Status),
		OrderTime:    o.OrderTime,
		DeliveryTime: o.DeliveryTime,
		Description:  o.Description,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func dishToResponse(d domain.Dish) dishDTO {
	return dishDTO{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price.StringFixed(2),
	}
}

func dishesToResponse(list []domain.Dish) []dishDTO {
	out := make([]dishDTO, 0, len(list))
	for _, d := range list {
		out = append(out, dishToResponse(d))
	}
	return out
}

func (r registerRequest) toInput() account.RegisterInput {
	return account.RegisterInput{
		Role:        domain.Role(r.Role),
		Email:       r.Email,
		Password:    r.Password,
		Name:        r.Name,
		Phone:       r.Phone,
		Address:     r.Address,
		City:        r.City,
		Street:      r.Street,
		Building:    r.Building,
		Description: r.Description,
	}
}

func accountToResponse(a domain.Account) accountDTO {
	return accountDTO{
		ID:          a.ID,
		Role:        string(a.Role),
		Email:       a.Email,
		Name:        a.Name,
		Phone:       a.Phone,
		Blocked:     a.Blocked,
		CreatedAt:   a.CreatedAt,
		Address:     a.Address,
		City:        a.City,
		Street:      a.Street,
		Building:    a.Building,
		Description: a.Description,
		Available:   a.Available,
	}
}
