package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"eats-backend/internal/apperr"
	"eats-backend/internal/domain"
	"eats-backend/internal/logx"
	"eats-backend/internal/service/order"
)

type fakeOrderUsecase struct {
	createFn func(ctx context.Context, clientID int64, in order.CreateOrderInput) (*domain.Order, error)
	byIDFn   func(ctx context.Context, id int64) (*domain.Order, error)
	listFn   func(ctx context.Context, role domain.Role, id int64) ([]domain.Order, error)
	statusFn func(ctx context.Context, orderID int64, status domain.OrderStatus, actingCourierID *int64) (*domain.Order, error)
	assignFn func(ctx context.Context, orderID, courierID int64) (*domain.Order, error)
	deleteFn func(ctx context.Context, orderID int64) error
}

func (f *fakeOrderUsecase) CreateOrder(ctx context.Context, clientID int64, in order.CreateOrderInput) (*domain.Order, error) {
	return f.createFn(ctx, clientID, in)
}

func (f *fakeOrderUsecase) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return f.byIDFn(ctx, id)
}

func (f *fakeOrderUsecase) OrdersFor(ctx context.Context, role domain.Role, id int64) ([]domain.Order, error) {
	return f.listFn(ctx, role, id)
}

func (f *fakeOrderUsecase) ChangeStatus(ctx context.Context, orderID int64, status domain.OrderStatus, actingCourierID *int64) (*domain.Order, error) {
	return f.statusFn(ctx, orderID, status, actingCourierID)
}

func (f *fakeOrderUsecase) AssignCourier(ctx context.Context, orderID, courierID int64) (*domain.Order, error) {
	return f.assignFn(ctx, orderID, courierID)
}

func (f *fakeOrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	return f.deleteFn(ctx, orderID)
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:           101,
		ClientID:     1,
		RestaurantID: 2,
		Items: []domain.OrderItem{
			{MenuID: 10, Quantity: 2, Price: decimal.RequireFromString("9.50"), DishName: "Margherita"},
		},
		TotalCost: decimal.RequireFromString("19.00"),
		Status:    domain.StatusPending,
	}
}

func TestOrderCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		uc := &fakeOrderUsecase{createFn: func(_ context.Context, clientID int64, in order.CreateOrderInput) (*domain.Order, error) {
			require.Equal(t, int64(1), clientID)
			require.Equal(t, int64(2), in.RestaurantID)
			require.Len(t, in.Items, 1)
			return sampleOrder(), nil
		}}
		h := NewOrderHandler(uc, logx.Nop())

		body := `{"client_id":1,"restaurant_id":2,"items":[{"menu_id":10,"quantity":2}]}`
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "/orders/101", rec.Header().Get("Location"))

		var got orderDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, int64(101), got.ID)
		require.Equal(t, "19.00", got.TotalCost)
		require.Equal(t, "pending", got.Status)
		require.Equal(t, "9.50", got.Items[0].Price)
	})

	t.Run("missing client id", func(t *testing.T) {
		h := NewOrderHandler(&fakeOrderUsecase{}, logx.Nop())

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(`{"restaurant_id":2,"items":[{"menu_id":10,"quantity":1}]}`)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("garbage body", func(t *testing.T) {
		h := NewOrderHandler(&fakeOrderUsecase{}, logx.Nop())

		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{")))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{apperr.ErrInvalid, http.StatusBadRequest},
			{apperr.ErrNotFound, http.StatusNotFound},
			{apperr.ErrForbidden, http.StatusForbidden},
			{apperr.ErrPaymentFailed, http.StatusPaymentRequired},
			{apperr.ErrUnavailable, http.StatusServiceUnavailable},
			{fmt.Errorf("boom"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			uc := &fakeOrderUsecase{createFn: func(context.Context, int64, order.CreateOrderInput) (*domain.Order, error) {
				return nil, tc.err
			}}
			h := NewOrderHandler(uc, logx.Nop())

			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/orders",
				strings.NewReader(`{"client_id":1,"restaurant_id":2,"items":[{"menu_id":10,"quantity":1}]}`)))

			require.Equal(t, tc.code, rec.Code, "for %v", tc.err)
		}
	})
}

func TestOrderGetByID(t *testing.T) {
	uc := &fakeOrderUsecase{byIDFn: func(_ context.Context, id int64) (*domain.Order, error) {
		if id == 101 {
			return sampleOrder(), nil
		}
		return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}}
	h := NewOrderHandler(uc, logx.Nop())

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/orders/101", nil),
			map[string]string{"id": "101"})
		h.GetByID(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/orders/999", nil),
			map[string]string{"id": "999"})
		h.GetByID(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/orders/abc", nil),
			map[string]string{"id": "abc"})
		h.GetByID(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderListFor(t *testing.T) {
	var gotRole domain.Role
	uc := &fakeOrderUsecase{listFn: func(_ context.Context, role domain.Role, id int64) ([]domain.Order, error) {
		gotRole = role
		return []domain.Order{*sampleOrder()}, nil
	}}
	h := NewOrderHandler(uc, logx.Nop())

	rec := httptest.NewRecorder()
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/clients/1/orders", nil),
		map[string]string{"id": "1"})
	h.ListFor(domain.RoleClient)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.RoleClient, gotRole)

	var got []orderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
}

func TestOrderChangeStatus(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		uc := &fakeOrderUsecase{statusFn: func(context.Context, int64, domain.OrderStatus, *int64) (*domain.Order, error) {
			return nil, apperr.ErrConflict
		}}
		h := NewOrderHandler(uc, logx.Nop())

		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/orders/101/status",
			strings.NewReader(`{"status":"confirmed"}`)), map[string]string{"id": "101"})
		h.ChangeStatus(rec, req)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("courier forwarded", func(t *testing.T) {
		var gotCourier *int64
		uc := &fakeOrderUsecase{statusFn: func(_ context.Context, _ int64, status domain.OrderStatus, actingCourierID *int64) (*domain.Order, error) {
			require.Equal(t, domain.StatusDelivered, status)
			gotCourier = actingCourierID
			return sampleOrder(), nil
		}}
		h := NewOrderHandler(uc, logx.Nop())

		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/orders/101/status",
			strings.NewReader(`{"status":"delivered","courier_id":3}`)), map[string]string{"id": "101"})
		h.ChangeStatus(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotCourier)
		require.Equal(t, int64(3), *gotCourier)
	})
}

func TestOrderAssign(t *testing.T) {
	uc := &fakeOrderUsecase{assignFn: func(_ context.Context, orderID, courierID int64) (*domain.Order, error) {
		require.Equal(t, int64(101), orderID)
		require.Equal(t, int64(3), courierID)
		o := sampleOrder()
		o.Status = domain.StatusInDelivery
		o.CourierID = &courierID
		return o, nil
	}}
	h := NewOrderHandler(uc, logx.Nop())

	rec := httptest.NewRecorder()
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/orders/101/assign",
		strings.NewReader(`{"courier_id":3}`)), map[string]string{"id": "101"})
	h.Assign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got orderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "in_delivery", got.Status)
	require.NotNil(t, got.CourierID)
}

func TestOrderDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		uc := &fakeOrderUsecase{deleteFn: func(context.Context, int64) error { return nil }}
		h := NewOrderHandler(uc, logx.Nop())

		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/orders/101", nil),
			map[string]string{"id": "101"})
		h.Delete(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("past the point of no return", func(t *testing.T) {
		uc := &fakeOrderUsecase{deleteFn: func(context.Context, int64) error {
			return apperr.ErrForbidden
		}}
		h := NewOrderHandler(uc, logx.Nop())

		rec := httptest.NewRecorder()
		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/orders/101", nil),
			map[string]string{"id": "101"})
		h.Delete(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
