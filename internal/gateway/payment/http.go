package payment

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eats-backend/internal/apperr"
)

// idempotencyNamespace seeds deterministic idempotency keys: every
// capture attempt for the same order carries the same key, so processor
// retries never double-charge.
var idempotencyNamespace = uuid.MustParse("9aa7f27a-84ae-4ee5-8a5c-4c9e00a53c2e")

// HTTPGateway talks to the payment processor's capture endpoint.
type HTTPGateway struct {
	baseURL  string
	currency string
	client   *http.Client
}

// NewHTTPGateway creates a processor client. timeout bounds every capture
// call; the processor is the one blocking external dependency inside the
// order transaction.
func NewHTTPGateway(baseURL, currency string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPGateway{baseURL: baseURL, currency: currency, client: client}
}

type captureRequest struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Method    string `json:"method"`
}

type captureResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	LastDigits    string `json:"last_digits"`
}

// IdempotencyKey derives the stable per-order idempotency key.
func IdempotencyKey(orderID int64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(orderID))
	return uuid.NewSHA1(idempotencyNamespace, buf[:]).String()
}

// Capture charges amount against the client's payment method. Declines
// come back as a declined result with a nil error; transport faults and
// processor outages come back wrapping apperr.ErrUnavailable so the
// caller may retry with the same idempotency key.
func (g *HTTPGateway) Capture(ctx context.Context, orderID int64, amount decimal.Decimal, method string) (CaptureResult, error) {
	body, err := json.Marshal(captureRequest{
		Reference: fmt.Sprintf("order-%d", orderID),
		Amount:    amount.StringFixed(2),
		Currency:  g.currency,
		Method:    method,
	})
	if err != nil {
		return CaptureResult{}, fmt.Errorf("payment gateway: encode capture: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/captures", bytes.NewReader(body))
	if err != nil {
		return CaptureResult{}, fmt.Errorf("payment gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", IdempotencyKey(orderID))

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return CaptureResult{}, fmt.Errorf("payment gateway: capture timed out: %w", apperr.ErrUnavailable)
		}
		return CaptureResult{}, fmt.Errorf("payment gateway: %v: %w", err, apperr.ErrUnavailable)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return CaptureResult{}, fmt.Errorf("payment gateway: processor returned %d: %w",
			resp.StatusCode, apperr.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return CaptureResult{}, fmt.Errorf("payment gateway: unexpected status %d", resp.StatusCode)
	}

	var out captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CaptureResult{}, fmt.Errorf("payment gateway: decode response: %w", err)
	}

	switch CaptureStatus(out.Status) {
	case StatusCaptured, StatusDeclined:
		return CaptureResult{
			Status:        CaptureStatus(out.Status),
			TransactionID: out.TransactionID,
			LastDigits:    out.LastDigits,
		}, nil
	default:
		return CaptureResult{}, fmt.Errorf("payment gateway: unknown capture status %q", out.Status)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
