package handlers

import (
	"net/http"
	"strconv"

	"eats-backend/internal/logx"
	"eats-backend/internal/service/menu"
)

// MenuHandler serves HTTP endpoints for restaurant menus.
type MenuHandler struct {
	uc     menuUsecase
	logger logx.Logger
}

// NewMenuHandler wires the menu service into HTTP handlers.
func NewMenuHandler(uc menuUsecase, logger logx.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, logger: logger}
}

// Menu handles GET /restaurants/{id}/menu.
func (h *MenuHandler) Menu(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	dishes, err := h.uc.Menu(r.Context(), restaurantID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, dishesToResponse(dishes))
}

// AddDish handles POST /restaurants/{id}/dishes.
func (h *MenuHandler) AddDish(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req createDishRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	dish, err := h.uc.AddDish(r.Context(), restaurantID, menu.DishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location",
		"/restaurants/"+strconv.FormatInt(restaurantID, 10)+
			"/dishes/"+strconv.FormatInt(dish.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, dishToResponse(*dish))
}

// UpdateDish handles PUT /restaurants/{id}/dishes/{dishID}.
func (h *MenuHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	dishID, err := idFromURL(r, "dishID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid dish id")
		return
	}
	var req updateDishRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	dish, err := h.uc.UpdateDish(r.Context(), restaurantID, dishID, menu.DishUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, dishToResponse(*dish))
}

// DeleteDish handles DELETE /restaurants/{id}/dishes/{dishID}.
func (h *MenuHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	dishID, err := idFromURL(r, "dishID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid dish id")
		return
	}

	if err := h.uc.DeleteDish(r.Context(), restaurantID, dishID); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
