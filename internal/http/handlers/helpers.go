package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eats-backend/internal/apperr"
	"eats-backend/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(l logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		l.Error("json encode failed",
			logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(l logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	l.Warn("request failed",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(l, w, r, status, errResponse{Error: msg})
}

// writeDomainError translates service errors into HTTP statuses.
func writeDomainError(l logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(l, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(l, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(l, w, r, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(l, w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrPaymentFailed):
		writeError(l, w, r, http.StatusPaymentRequired, "payment declined")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(l, w, r, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		l.Error("internal error",
			logx.String("req_id", reqID(r.Context())), logx.Err(err))
		writeError(l, w, r, http.StatusInternalServerError, "internal error")
	}
}

const bodyLimit = 1 << 20

func decodeJSON[T any](l logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(l, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(l, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
