package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"

	"settlement-engine/config"
	"settlement-engine/internal/core/domain"
	"settlement-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the exchange's custody API. It implements both
// ports.ExchangeGateway and ports.WithdrawalExecutor.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates an exchange API client.
func NewClient(cfg config.ExchangeConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// NewClientWithHTTP creates a client with a caller-supplied HTTP client.
func NewClientWithHTTP(cfg config.ExchangeConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        log,
	}
}

type balanceResponse struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"` // base-10 integer, smallest unit
}

type withdrawalRequest struct {
	SettlementID string `json:"settlement_id"`
	Currency     string `json:"currency"`
	SourceKey    string `json:"source_key"`
	Amount       string `json:"amount"`
}

type withdrawalResponse struct {
	Reference string `json:"reference"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// GetBalance fetches the exchange-side balance for a currency. The wire
// format carries the amount as a decimal string so precision survives the
// round trip.
func (c *Client) GetBalance(ctx context.Context, currency string) (*big.Int, error) {
	endpoint := fmt.Sprintf("%s/v1/balances/%s", c.baseURL, url.PathEscape(currency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build balance request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange balance request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange balance request: %s", c.readError(resp))
	}

	var body balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode balance response: %w", err)
	}

	balance, err := domain.ParseAmount(body.Balance)
	if err != nil {
		return nil, fmt.Errorf("exchange returned malformed balance %q: %w", body.Balance, err)
	}
	return balance, nil
}

// Execute submits one withdrawal order and returns the exchange-side
// reference for it.
func (c *Client) Execute(ctx context.Context, order ports.WithdrawalRequest) (string, error) {
	payload, err := json.Marshal(withdrawalRequest{
		SettlementID: order.SettlementID.String(),
		Currency:     order.Currency,
		SourceKey:    order.SourceKey,
		Amount:       order.Amount,
	})
	if err != nil {
		return "", fmt.Errorf("marshal withdrawal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/withdrawals"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build withdrawal request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("withdrawal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("withdrawal request: %s", c.readError(resp))
	}

	var body withdrawalResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode withdrawal response: %w", err)
	}
	if body.Reference == "" {
		return "", fmt.Errorf("withdrawal response missing reference")
	}

	c.log.Info().
		Str("source_key", order.SourceKey).
		Str("currency", order.Currency).
		Str("amount", order.Amount).
		Str("reference", body.Reference).
		Msg("withdrawal submitted")

	return body.Reference, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

// readError extracts a useful message from a non-2xx response.
func (c *Client) readError(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, body.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
