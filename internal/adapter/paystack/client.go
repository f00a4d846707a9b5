// Package paystack is the payment gateway client. It initializes hosted
// payments, verifies them by reference and signs webhook payloads.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"adserve/internal/config/configs"
	"adserve/internal/core/port"
)

// Client implements port.PaymentGateway against the Paystack REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	callbackURL string
	timeout     time.Duration
}

// NewClient creates a gateway client for cfg.
func NewClient(cfg configs.Paystack) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		timeout:     timeout,
	}
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeBody struct {
	Email       string            `json:"email"`
	Amount      string            `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	Reference string     `json:"reference"`
	Amount    int64      `json:"amount"`
	PaidAt    *time.Time `json:"paid_at"`
}

// Initialize starts a hosted payment and returns the authorization handle.
func (c *Client) Initialize(ctx context.Context, req port.InitializeRequest) (*port.Authorization, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("paystack: amount must be > 0")
	}
	if strings.TrimSpace(req.Reference) == "" {
		return nil, fmt.Errorf("paystack: reference must be non-empty")
	}
	body, err := json.Marshal(initializeBody{
		Email:       req.Email,
		Amount:      strconv.FormatInt(req.Amount, 10),
		Reference:   req.Reference,
		CallbackURL: c.callbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("paystack: encode request: %w", err)
	}

	var out envelope[initializeData]
	if err = c.do(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}
	ref := out.Data.Reference
	if ref == "" {
		ref = req.Reference
	}
	return &port.Authorization{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        ref,
	}, nil
}

// Verify asks the gateway for the settlement state of reference.
func (c *Client) Verify(ctx context.Context, reference string) (*port.Verification, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("paystack: reference must be non-empty")
	}
	var out envelope[verifyData]
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return nil, err
	}
	v := &port.Verification{
		Reference: out.Data.Reference,
		Status:    mapStatus(out.Data.Status),
		Amount:    out.Data.Amount,
		PaidAt:    out.Data.PaidAt,
	}
	if out.Data.ID != 0 {
		v.ProviderReference = strconv.FormatInt(out.Data.ID, 10)
	}
	if v.Reference == "" {
		v.Reference = reference
	}
	return v, nil
}

func mapStatus(s string) port.GatewayStatus {
	switch strings.ToLower(s) {
	case "success":
		return port.GatewaySuccess
	case "failed", "reversed":
		return port.GatewayFailed
	case "abandoned":
		return port.GatewayAbandoned
	default:
		return port.GatewayPending
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paystack: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("paystack: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("paystack: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("paystack: %s %s returned %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("paystack: decode response: %w", err)
	}
	return nil
}
