package arc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers/arc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	txHex = "0100000001"
	txId  = "b3b8d1bd2e5b48ad1cd3a4c9f2ab3f3e0b1e7a5ad4a1cd9bd3bb2c1a5c8b1e6d"
)

func newClient(t *testing.T, policy string) *arc.Client {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/tx", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var request struct {
			RawTx string `json:"rawTx"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		switch request.RawTx {
		case txHex:
			_, _ = w.Write([]byte(`{"txid": "` + txId + `", "txStatus": "SEEN_ON_NETWORK"}`))
		case "01":
			_, _ = w.Write([]byte(`{"txid": "` + txId + `", "txStatus": "REJECTED", "extraInfo": "mempool conflict"}`))
		default:
			w.WriteHeader(463)
			_, _ = w.Write([]byte(`{"status": 463, "title": "Malformed transaction", "detail": "Transaction is malformed and cannot be processed"}`))
		}
	})
	mux.HandleFunc("GET /v1/tx/"+txId, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"txid": "` + txId + `", "txStatus": "MINED", "blockHeight": 800000, "blockHash": "hash"}`))
	})
	mux.HandleFunc("GET /v1/policy", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(policy))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := arc.New(provider.Config{
		provider.KeyClient: server.Client(),
		provider.KeyChain:  provider.ChainBsv,
		"url":              server.URL,
		"apikey":           "secret",
	})
	require.NoError(t, err)
	return client
}

func TestBroadcast(t *testing.T) {
	client := newClient(t, "")

	tests := []struct {
		name    string
		payload string
		txId    string
		error   string
	}{
		{name: "accepted", payload: txHex, txId: txId},
		{name: "rejected status", payload: "01", error: "mempool conflict"},
		{name: "malformed", payload: "00", error: "Transaction is malformed and cannot be processed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: tc.payload})
			require.NoError(t, err)
			require.Equal(t, tc.txId, result.TxId)
			require.Equal(t, tc.error, result.Error)
		})
	}
}

func TestStatus(t *testing.T) {
	client := newClient(t, "")

	status, err := client.Status(context.Background(), provider.StatusRequest{TxId: txId, Verbose: true})
	require.NoError(t, err)
	require.True(t, status.Valid)
	require.True(t, status.Confirmed)
	require.Equal(t, uint32(800000), status.BlockHeight)
	require.Equal(t, "MINED", status.Details["txStatus"])

	status, err = client.Status(context.Background(), provider.StatusRequest{TxId: "00" + txId[2:]})
	require.NoError(t, err)
	require.False(t, status.Valid)
}

func TestRefreshRate(t *testing.T) {
	client := newClient(t, `{"policy": {"miningFee": {"satoshis": 1, "bytes": 1000}}}`)
	require.NoError(t, client.RefreshRate(context.Background()))
	require.Equal(t, float64(1), client.GetRate())

	client = newClient(t, `{"policy": {}}`)
	require.Error(t, client.RefreshRate(context.Background()))
	require.Zero(t, client.GetRate())
}
