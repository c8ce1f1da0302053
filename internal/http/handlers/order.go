package handlers

import (
	"net/http"
	"strconv"

	"eats-backend/internal/domain"
	"eats-backend/internal/logx"
)

// OrderHandler serves HTTP endpoints for order resources.
type OrderHandler struct {
	uc     orderUsecase
	logger logx.Logger
}

// NewOrderHandler wires the order coordinator into HTTP handlers.
func NewOrderHandler(uc orderUsecase, logger logx.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.ClientID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "client_id is required")
		return
	}

	ord, err := h.uc.CreateOrder(r.Context(), req.ClientID, req.toInput())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/orders/"+strconv.FormatInt(ord.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(*ord))
}

// GetByID handles GET /orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	ord, err := h.uc.OrderByID(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*ord))
}

// ListFor returns a handler for GET /{clients,restaurants,couriers}/{id}/orders.
func (h *OrderHandler) ListFor(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromURL(r, "id")
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
			return
		}

		list, err := h.uc.OrdersFor(r.Context(), role, id)
		if err != nil {
			writeDomainError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
	}
}

// ChangeStatus handles POST /orders/{id}/status.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	ord, err := h.uc.ChangeStatus(r.Context(), id, domain.OrderStatus(req.Status), req.CourierID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*ord))
}

// Assign handles POST /orders/{id}/assign.
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req assignCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.CourierID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "courier_id is required")
		return
	}

	ord, err := h.uc.AssignCourier(r.Context(), id, req.CourierID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*ord))
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.uc.DeleteOrder(r.Context(), id); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
