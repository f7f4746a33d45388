package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiteasy/ledger/internal/derive"
	"github.com/remiteasy/ledger/internal/engine"
	"github.com/remiteasy/ledger/internal/sqlite"
	"github.com/remiteasy/ledger/pkg/types"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	backend := sqlite.NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, backend.Attach(cfg))
	t.Cleanup(func() { _ = backend.Detach() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := engine.New(backend, derive.Addresser{}, engine.WithLogger(log))
	srv := NewServer(e, testSecret, WithLogger(log))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// do sends an authenticated JSON request as the given wallet.
func do(t *testing.T, ts *httptest.Server, wallet, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)

	if wallet != "" {
		token, err := MintToken(testSecret, derive.WalletIdentity(wallet), time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "remiteasy_ledger")
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, "", http.MethodGet, "/v1/state", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	errBody := decode[ErrorResponse](t, resp)
	assert.Equal(t, "UNAUTHENTICATED", errBody.Code)
}

func TestAuthRejectsForgedToken(t *testing.T) {
	ts := newTestServer(t)

	token, err := MintToken([]byte("wrong-secret"), derive.WalletIdentity("alice"), time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/state", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransferLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	bob := derive.WalletIdentity("bob")

	// Admin initializes at 100 bps and funds alice with 2 USDC.
	resp := do(t, ts, "admin", http.MethodPost, "/v1/initialize",
		map[string]any{"fee_rate_bps": 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, ts, "admin", http.MethodPost, "/v1/deposit",
		map[string]any{"to": derive.WalletIdentity("alice").String(), "amount_usdc": "2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Alice opens a 1 USDC transfer to bob.
	resp = do(t, ts, "alice", http.MethodPost, "/v1/transfers", map[string]any{
		"recipient":   bob.String(),
		"amount_usdc": "1",
		"memo":        "rent",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sent := decode[transferView](t, resp)
	assert.Equal(t, "pending", sent.Status)
	assert.Equal(t, uint64(1_000_000), sent.Amount)
	assert.Equal(t, "1", sent.AmountUSDC)
	require.NotEmpty(t, sent.Address)

	// Bob releases it.
	resp = do(t, ts, "bob", http.MethodPost,
		fmt.Sprintf("/v1/transfers/%s/receive", sent.Address), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	received := decode[transferView](t, resp)
	assert.Equal(t, "completed", received.Status)
	require.NotNil(t, received.CompletedAt)

	// Bob's balance reflects the net amount.
	resp = do(t, ts, "bob", http.MethodGet, "/v1/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance := decode[map[string]any](t, resp)
	assert.Equal(t, "0.99", balance["balance_usdc"])

	// State reflects one transfer of full gross volume.
	resp = do(t, ts, "alice", http.MethodGet, "/v1/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[stateView](t, resp)
	assert.Equal(t, uint64(1), state.TransferCount)
	assert.Equal(t, uint64(1_000_000), state.TotalVolume)
}

func TestErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	bob := derive.WalletIdentity("bob")

	resp := do(t, ts, "admin", http.MethodPost, "/v1/initialize",
		map[string]any{"fee_rate_bps": 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("re-initialize is conflict", func(t *testing.T) {
		resp := do(t, ts, "admin", http.MethodPost, "/v1/initialize",
			map[string]any{"fee_rate_bps": 100})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "ALREADY_INITIALIZED", decode[ErrorResponse](t, resp).Code)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		resp := do(t, ts, "alice", http.MethodPost, "/v1/transfers", map[string]any{
			"recipient": bob.String(), "amount_lamports": 0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_AMOUNT", decode[ErrorResponse](t, resp).Code)
	})

	t.Run("unfunded sender rejected", func(t *testing.T) {
		resp := do(t, ts, "alice", http.MethodPost, "/v1/transfers", map[string]any{
			"recipient": bob.String(), "amount_lamports": 100,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "INSUFFICIENT_FUNDS", decode[ErrorResponse](t, resp).Code)
	})

	t.Run("unknown transfer is not found", func(t *testing.T) {
		resp := do(t, ts, "bob", http.MethodPost, "/v1/transfers/ghost/receive", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decode[ErrorResponse](t, resp).Code)
	})

	t.Run("deposit by non-admin forbidden", func(t *testing.T) {
		resp := do(t, ts, "alice", http.MethodPost, "/v1/deposit",
			map[string]any{"to": bob.String(), "amount_lamports": 1})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestReceiveAuthorizationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	bob := derive.WalletIdentity("bob")

	resp := do(t, ts, "admin", http.MethodPost, "/v1/initialize",
		map[string]any{"fee_rate_bps": 0})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, ts, "admin", http.MethodPost, "/v1/deposit",
		map[string]any{"to": derive.WalletIdentity("alice").String(), "amount_lamports": 1000})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, "alice", http.MethodPost, "/v1/transfers", map[string]any{
		"recipient": bob.String(), "amount_lamports": 1000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sent := decode[transferView](t, resp)

	// Only bob may receive; alice trying is forbidden.
	resp = do(t, ts, "alice", http.MethodPost,
		fmt.Sprintf("/v1/transfers/%s/receive", sent.Address), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED_RECEIPT", decode[ErrorResponse](t, resp).Code)

	// Cancel by bob is likewise forbidden.
	resp = do(t, ts, "bob", http.MethodPost,
		fmt.Sprintf("/v1/transfers/%s/cancel", sent.Address), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED_CANCELLATION", decode[ErrorResponse](t, resp).Code)

	// Settle, then a second receive conflicts.
	resp = do(t, ts, "bob", http.MethodPost,
		fmt.Sprintf("/v1/transfers/%s/receive", sent.Address), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, ts, "bob", http.MethodPost,
		fmt.Sprintf("/v1/transfers/%s/receive", sent.Address), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "TRANSFER_NOT_PENDING", decode[ErrorResponse](t, resp).Code)
}
