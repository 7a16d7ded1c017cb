package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/estrie-eats/checkout-backend/pkg/config"
	pkgerrors "github.com/estrie-eats/checkout-backend/pkg/errors"
)

const maxErrorBodyBytes = 64 * 1024

// Client talks to the external order/payment-session creation service.
type Client struct {
	baseURL   string
	clientURL string
	timeout   time.Duration
	http      *http.Client
}

// SessionCreator is the surface the submission coordinator depends on.
type SessionCreator interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// NewClient validates the payment configuration and builds a client.
func NewClient(cfg config.PaymentConfig) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("payment base url is required")
	}
	clientURL := strings.TrimSpace(cfg.ClientURL)
	if clientURL == "" {
		return nil, errors.New("payment client url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		clientURL: clientURL,
		timeout:   timeout,
		http:      &http.Client{},
	}, nil
}

// ClientURL reports the storefront URL the payment provider redirects back to.
func (c *Client) ClientURL() string {
	if c == nil {
		return ""
	}
	return c.clientURL
}

// SessionRequest is the JSON body POSTed to the payment-session service.
type SessionRequest struct {
	CartItems         []CartItem   `json:"cartItems"`
	CustomerInfo      CustomerInfo `json:"customerInfo"`
	Totals            Totals       `json:"totals"`
	UserID            string       `json:"userId"`
	EstimatedPrepTime int          `json:"estimatedPrepTime"`
	ClientURL         string       `json:"clientUrl"`
	PointsInfo        *PointsInfo  `json:"pointsInfo,omitempty"`
}

type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Image    string   `json:"image,omitempty"`
	Images   []string `json:"images,omitempty"`
}

type CustomerInfo struct {
	FirstName            string `json:"firstName"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	DeliveryMethod       string `json:"deliveryMethod"`
	Address              string `json:"address,omitempty"`
	City                 string `json:"city,omitempty"`
	Area                 string `json:"area,omitempty"`
	ZipCode              string `json:"zipCode,omitempty"`
	DeliveryInstructions string `json:"deliveryInstructions,omitempty"`
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	GST         float64 `json:"gst"`
	QST         float64 `json:"qst"`
	DeliveryFee float64 `json:"deliveryFee"`
	FinalTotal  float64 `json:"finalTotal"`
}

type PointsInfo struct {
	UserID       string  `json:"userId"`
	PointsEarned int64   `json:"pointsEarned"`
	CartTotal    float64 `json:"cartTotal"`
}

// Session is the provider's successful answer: where to send the browser.
type Session struct {
	URL     string
	OrderID string
}

type sessionResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// CreateSession POSTs the submission payload and returns the redirect target.
// The request is bounded by the configured timeout; cancellation surfaces as a
// TIMEOUT error, every other transport or provider failure as SUBMISSION_FAILED.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if req.ClientURL == "" {
		req.ClientURL = c.clientURL
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build session request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, err, "payment session request timed out")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "reach payment service")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "read payment response")
	}

	var decoded sessionResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !decoded.Success {
		return nil, pkgerrors.New(pkgerrors.CodeSubmission, failureMessage(resp.StatusCode, decoded, decodeErr))
	}
	if decoded.URL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeSubmission, "payment service returned no redirect url")
	}

	return &Session{URL: decoded.URL, OrderID: decoded.OrderID}, nil
}

// failureMessage picks the most specific message available from the response.
func failureMessage(status int, decoded sessionResponse, decodeErr error) string {
	if decoded.Error != "" {
		return decoded.Error
	}
	if decoded.Details != "" {
		return decoded.Details
	}
	if decodeErr != nil && status >= 200 && status < 300 {
		return "payment service returned a malformed response"
	}
	return fmt.Sprintf("payment service rejected the order (status %d)", status)
}
