package handlers

import (
	"net/http"
	"strconv"

	"eats-backend/internal/domain"
	"eats-backend/internal/logx"
)

// AccountHandler serves HTTP endpoints for account resources.
type AccountHandler struct {
	uc     accountUsecase
	logger logx.Logger
}

// NewAccountHandler wires the account service into HTTP handlers.
func NewAccountHandler(uc accountUsecase, logger logx.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, logger: logger}
}

// Register handles POST /accounts.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	acc, err := h.uc.Register(r.Context(), req.toInput())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/accounts/"+strconv.FormatInt(acc.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, accountToResponse(*acc))
}

// Login handles POST /accounts/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	acc, err := h.uc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, accountToResponse(*acc))
}

// GetByID handles GET /accounts/{id}.
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	acc, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, accountToResponse(*acc))
}

// Update handles PATCH /accounts/{id}.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateAccountRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	acc, err := h.uc.Update(r.Context(), domain.PartialAccountUpdate{
		ID:          id,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		Street:      req.Street,
		Building:    req.Building,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, accountToResponse(*acc))
}

// SetBlocked handles POST /accounts/{id}/block.
func (h *AccountHandler) SetBlocked(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req blockRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.uc.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// SetAvailability handles POST /couriers/{id}/availability.
func (h *AccountHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req availabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.uc.SetAvailability(r.Context(), id, req.Available); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}
