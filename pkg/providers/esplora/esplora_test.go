package esplora_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers/esplora"
	"github.com/stretchr/testify/require"
)

const (
	txHex = "0200000001"

	genesisTxId = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

	confirmedTxId = "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"
)

func newClient(t *testing.T) *esplora.Client {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tx", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != txHex {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("sendrawtransaction RPC error: {\"code\":-22,\"message\":\"TX decode failed\"}"))
			return
		}
		_, _ = w.Write([]byte(genesisTxId))
	})
	mux.HandleFunc("GET /tx/"+confirmedTxId+"/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"confirmed": true, "block_height": 100, "block_hash": "hash", "block_time": 1231006505}`))
	})
	mux.HandleFunc("GET /tx/"+genesisTxId+"/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"confirmed": false}`))
	})
	mux.HandleFunc("GET /blocks/tip/height", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("109"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := esplora.New(provider.Config{
		provider.KeyClient: server.Client(),
		provider.KeyChain:  provider.ChainBtc,
		"url":              server.URL,
	})
	require.NoError(t, err)
	require.Equal(t, esplora.Name, client.Name())
	return client
}

func TestBroadcast(t *testing.T) {
	client := newClient(t)

	result, err := client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: txHex, Verbose: true})
	require.NoError(t, err)
	require.True(t, result.Success())
	require.Equal(t, genesisTxId, result.TxId)
	require.Equal(t, client.Url(), result.Details["url"])

	result, err = client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: "00"})
	require.NoError(t, err)
	require.False(t, result.Success())
	require.Contains(t, result.Error, "TX decode failed")
}

func TestStatus(t *testing.T) {
	client := newClient(t)

	tests := []struct {
		name     string
		txId     string
		expected *provider.StatusResult
	}{
		{
			name: "confirmed",
			txId: confirmedTxId,
			expected: &provider.StatusResult{
				Valid:         true,
				Confirmed:     true,
				Confirmations: 10,
				BlockHeight:   100,
				BlockHash:     "hash",
			},
		},
		{
			name:     "unconfirmed",
			txId:     genesisTxId,
			expected: &provider.StatusResult{Valid: true},
		},
		{
			name:     "unknown",
			txId:     "0000000000000000000000000000000000000000000000000000000000000000",
			expected: &provider.StatusResult{Valid: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := client.Status(context.Background(), provider.StatusRequest{TxId: tt.txId})
			require.NoError(t, err)
			require.Equal(t, tt.expected, status)
		})
	}
}

func TestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := esplora.New(provider.Config{
		provider.KeyClient: server.Client(),
		provider.KeyChain:  provider.ChainLiquid,
		"url":              server.URL,
	})
	require.NoError(t, err)

	_, err = client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: txHex})
	require.Error(t, err)
	_, err = client.Status(context.Background(), provider.StatusRequest{TxId: genesisTxId})
	require.Error(t, err)
	require.Zero(t, client.GetRate())
}

func TestNew(t *testing.T) {
	client, err := esplora.New(provider.Config{
		provider.KeyClient: http.DefaultClient,
		provider.KeyChain:  provider.ChainLiquid,
	})
	require.NoError(t, err)
	require.Equal(t, esplora.DefaultUrls[provider.ChainLiquid], client.Url())

	_, err = esplora.New(provider.Config{
		provider.KeyClient: http.DefaultClient,
		provider.KeyChain:  provider.ChainBsv,
	})
	require.Error(t, err)

	_, err = esplora.New(provider.Config{provider.KeyChain: provider.ChainBtc})
	require.Error(t, err)
}
