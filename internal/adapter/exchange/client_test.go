package exchange

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"settlement-engine/config"
	"settlement-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.ExchangeConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

func TestClient_GetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/balances/BTC", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		json.NewEncoder(w).Encode(map[string]string{
			"currency": "BTC",
			"balance":  "40000000",
		})
	}))
	defer srv.Close()

	balance, err := newTestClient(srv.URL).GetBalance(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "40000000", balance.String())
}

func TestClient_GetBalance_LargeAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"currency": "ETH",
			"balance":  "10000000000000000000",
		})
	}))
	defer srv.Close()

	// Past int64 range, must survive exactly
	balance, err := newTestClient(srv.URL).GetBalance(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", balance.String())
}

func TestClient_GetBalance_MalformedAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"currency": "BTC",
			"balance":  "4.5e7",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetBalance(context.Background(), "BTC")
	assert.Error(t, err)
}

func TestClient_GetBalance_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "maintenance window"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetBalance(context.Background(), "BTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "maintenance window")
}

func TestClient_Execute(t *testing.T) {
	settlementID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/withdrawals", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, settlementID.String(), body["settlement_id"])
		assert.Equal(t, "cold-1", body["source_key"])
		assert.Equal(t, "1666666", body["amount"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"reference": "wd-20260830-0001"})
	}))
	defer srv.Close()

	ref, err := newTestClient(srv.URL).Execute(context.Background(), ports.WithdrawalRequest{
		SettlementID: settlementID,
		Currency:     "BTC",
		SourceKey:    "cold-1",
		Amount:       "1666666",
	})
	require.NoError(t, err)
	assert.Equal(t, "wd-20260830-0001", ref)
}

func TestClient_Execute_MissingReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Execute(context.Background(), ports.WithdrawalRequest{
		SettlementID: uuid.New(),
		Currency:     "BTC",
		SourceKey:    "cold-1",
		Amount:       "100",
	})
	assert.Error(t, err)
}

func TestClient_Execute_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient hot wallet capacity"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Execute(context.Background(), ports.WithdrawalRequest{
		SettlementID: uuid.New(),
		Currency:     "BTC",
		SourceKey:    "cold-1",
		Amount:       "100",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient hot wallet capacity")
}
