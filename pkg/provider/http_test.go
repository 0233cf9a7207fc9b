package provider_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHttp(t *testing.T, handler http.HandlerFunc, settings provider.Settings) *provider.Http {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	settings.Client = server.Client()
	return provider.NewHttp(settings, server.URL+"/")
}

func TestHttpGet(t *testing.T) {
	h := newHttp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"height": 10}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("Transaction not found"))
		}
	}, provider.Settings{})

	var response struct {
		Height uint32 `json:"height"`
	}
	require.NoError(t, h.GetJson(context.Background(), "/ok", &response))
	require.Equal(t, uint32(10), response.Height)

	_, err := h.Get(context.Background(), "/missing")
	var statusErr *provider.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.Equal(t, "Transaction not found", statusErr.Body)
}

func TestHttpPostHeaders(t *testing.T) {
	h := newHttp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"rawTx": "00"}`, string(body))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "malformed transaction"}`))
	}, provider.Settings{})
	h.SetHeader("Authorization", "Bearer key")

	code, body, err := h.PostJson(context.Background(), "/v1/tx", map[string]string{"rawTx": "00"})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, provider.IsSuccess(code))
	require.Equal(t, "malformed transaction", provider.ErrorMessage(code, body))
}

func TestHttpTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	h := provider.NewHttp(provider.Settings{Client: server.Client(), Url: server.URL}, "")
	_, _, err := h.Post(context.Background(), "/tx", "text/plain", []byte("00"))
	require.Error(t, err)
}

func TestHttpRateLimit(t *testing.T) {
	h := newHttp(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}, provider.Settings{RateLimit: 1})

	_, err := h.Get(context.Background(), "/")
	require.NoError(t, err)

	// the single token is used up, so waiting for the next one has to exceed the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = h.Get(ctx, "/")
	require.Error(t, err)
}

func TestHttpDefaultUrl(t *testing.T) {
	h := provider.NewHttp(provider.Settings{}, "https://mempool.space/api/")
	require.Equal(t, "https://mempool.space/api", h.Url())

	h = provider.NewHttp(provider.Settings{Url: "http://localhost:3000"}, "https://mempool.space/api")
	require.Equal(t, "http://localhost:3000", h.Url())
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		expected string
	}{
		{"plain text", 400, "sendrawtransaction RPC error: bad-txns", "sendrawtransaction RPC error: bad-txns"},
		{"error field", 400, `{"error": "txn-mempool-conflict"}`, "txn-mempool-conflict"},
		{"error object", 400, `{"error": {"code": -26}}`, "map[code:-26]"},
		{"message field", 400, `{"message": "Unknown error"}`, "Unknown error"},
		{"detail and title", 465, `{"title": "Fee too low", "detail": "Fees are insufficient"}`, "Fees are insufficient"},
		{"empty", 502, "", "failed with status 502"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, provider.ErrorMessage(tc.code, []byte(tc.body)))
		})
	}
}

func TestRateCache(t *testing.T) {
	var cache provider.RateCache
	require.Zero(t, cache.GetRate())

	cache.SetRate(1500)
	require.Equal(t, float64(1500), cache.GetRate())

	cache.SetRate(-1)
	require.Zero(t, cache.GetRate())
}
