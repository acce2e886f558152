// Package payment provides the HTTP client for the external payment provider
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/metrics"
)

// ChargeRequest asks the provider to capture a payment
type ChargeRequest struct {
	OrderID     string `json:"orderId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`

	// MethodToken is the tokenized payment method from the storefront
	MethodToken string `json:"methodToken"`
}

// Charge is the provider's record of a captured payment
type Charge struct {
	ID          string `json:"id"`
	Status      string `json:"status"` // succeeded, declined
	DeclineCode string `json:"declineCode,omitempty"`
}

// RefundRequest asks the provider to return a captured payment
type RefundRequest struct {
	ChargeID    string `json:"chargeId"`
	AmountCents int64  `json:"amountCents"`
}

// Provider is the payment provider abstraction the order operations use
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
	Refund(ctx context.Context, req RefundRequest) (*Charge, error)
}

// ClientConfig configures the payment client
type ClientConfig struct {
	BaseURL string
	APIKey  string

	// Timeout for provider requests
	Timeout time.Duration

	// MaxRetries for transient errors
	MaxRetries int

	// BaseBackoff for retry backoff (multiplied by attempt number)
	BaseBackoff time.Duration

	// CircuitBreaker settings
	CircuitBreakerEnabled     bool
	CircuitBreakerRequests    uint32
	CircuitBreakerInterval    time.Duration
	CircuitBreakerRatio       float64
	CircuitBreakerTimeout     time.Duration
	CircuitBreakerMinRequests uint32
}

// DefaultClientConfig returns sensible defaults for production
func DefaultClientConfig(baseURL, apiKey string) *ClientConfig {
	return &ClientConfig{
		BaseURL:                   baseURL,
		APIKey:                    apiKey,
		Timeout:                   30 * time.Second,
		MaxRetries:                3,
		BaseBackoff:               time.Second,
		CircuitBreakerEnabled:     true,
		CircuitBreakerRequests:    5,
		CircuitBreakerInterval:    60 * time.Second,
		CircuitBreakerRatio:       0.5,
		CircuitBreakerTimeout:     10 * time.Second,
		CircuitBreakerMinRequests: 5,
	}
}

// Client calls the payment provider over HTTP with retries and a circuit
// breaker. Declines are terminal; only transport failures and provider
// 5xx responses are retried.
type Client struct {
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker
	baseURL        string
	apiKey         string
	maxRetries     int
	baseBackoff    time.Duration

	// sleep is injectable for tests
	sleep func(time.Duration)
}

// NewClient creates a payment client
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultClientConfig("", "")
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	client := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
		sleep:       time.Sleep,
	}

	if cfg.CircuitBreakerEnabled {
		client.circuitBreaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "payment-provider",
			MaxRequests: cfg.CircuitBreakerRequests,
			Interval:    cfg.CircuitBreakerInterval,
			Timeout:     cfg.CircuitBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.CircuitBreakerMinRequests {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= cfg.CircuitBreakerRatio
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				slog.Info("Payment circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String())

				switch to {
				case gobreaker.StateClosed:
					metrics.PaymentBreakerState.Set(metrics.BreakerClosed)
				case gobreaker.StateOpen:
					metrics.PaymentBreakerState.Set(metrics.BreakerOpen)
				case gobreaker.StateHalfOpen:
					metrics.PaymentBreakerState.Set(metrics.BreakerHalfOpen)
				}
			},
		})
	}

	return client
}

// Charge captures a payment for an order
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, apperr.Validation(apperr.CodeInvalidValue, "Charge amount must be positive")
	}
	return c.execute(ctx, "/v1/charges", req)
}

// Refund returns a captured payment
func (c *Client) Refund(ctx context.Context, req RefundRequest) (*Charge, error) {
	if req.ChargeID == "" {
		return nil, apperr.Validation(apperr.CodeRequired, "Charge id is required")
	}
	return c.execute(ctx, "/v1/refunds", req)
}

func (c *Client) execute(ctx context.Context, path string, payload any) (*Charge, error) {
	if c.circuitBreaker != nil {
		result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.executeWithRetry(ctx, path, payload)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				metrics.PaymentRequests.WithLabelValues("unavailable").Inc()
				return nil, apperr.Payment(apperr.CodePaymentUnavailable, "Payment provider temporarily unavailable").
					WithCause(err)
			}
			return nil, err
		}
		return result.(*Charge), nil
	}

	return c.executeWithRetry(ctx, path, payload)
}

func (c *Client) executeWithRetry(ctx context.Context, path string, payload any) (*Charge, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		charge, err := c.executeOnce(ctx, path, payload, attempt)
		if err == nil {
			return charge, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < c.maxRetries {
			backoff := time.Duration(attempt) * c.baseBackoff
			slog.Info("Retrying payment request after backoff",
				"path", path,
				"attempt", attempt,
				"backoff", backoff)
			c.sleep(backoff)
		}
	}

	return nil, lastErr
}

func (c *Client) executeOnce(ctx context.Context, path string, payload any, attempt int) (*Charge, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	slog.Debug("Executing payment request", "path", path, "attempt", attempt)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PaymentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PaymentRequests.WithLabelValues("unavailable").Inc()
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	return c.handleResponse(resp.StatusCode, respBody)
}

func (c *Client) transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.Payment(apperr.CodePaymentUnavailable, "Payment provider unreachable").WithCause(err)
}

func (c *Client) handleResponse(statusCode int, body []byte) (*Charge, error) {
	// 2xx: the provider answered, but the charge may still be declined
	if statusCode >= 200 && statusCode < 300 {
		var charge Charge
		if err := json.Unmarshal(body, &charge); err != nil {
			metrics.PaymentRequests.WithLabelValues("unavailable").Inc()
			return nil, apperr.Payment(apperr.CodePaymentUnavailable, "Invalid payment provider response").
				WithCause(err)
		}

		if charge.Status == "declined" {
			metrics.PaymentRequests.WithLabelValues("declined").Inc()
			return nil, apperr.Payment(apperr.CodePaymentDeclined, "Payment was declined").
				WithDetail("declineCode", charge.DeclineCode)
		}

		metrics.PaymentRequests.WithLabelValues("success").Inc()
		return &charge, nil
	}

	// 4xx: our request is wrong, retrying cannot help
	if statusCode >= 400 && statusCode < 500 {
		metrics.PaymentRequests.WithLabelValues("declined").Inc()
		return nil, apperr.Payment(apperr.CodePaymentDeclined, "Payment request rejected").
			WithDetail("statusCode", statusCode)
	}

	// 5xx: provider trouble, transient
	metrics.PaymentRequests.WithLabelValues("unavailable").Inc()
	return nil, apperr.Payment(apperr.CodePaymentUnavailable, "Payment provider error").
		WithDetail("statusCode", statusCode)
}

// isRetryable reports whether the charge attempt may be repeated.
// Declines and 4xx rejections carry CodePaymentDeclined and are terminal.
func isRetryable(err error) bool {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Code == apperr.CodePaymentUnavailable
	}
	return false
}
