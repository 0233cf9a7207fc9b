package whatsonchain_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers/whatsonchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	txHex = "0100000001"
	txId  = "b3b8d1bd2e5b48ad1cd3a4c9f2ab3f3e0b1e7a5ad4a1cd9bd3bb2c1a5c8b1e6d"
)

func newClient(t *testing.T) *whatsonchain.Client {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tx/raw", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Authorization"))
		var request struct {
			TxHex string `json:"txhex"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		if request.TxHex != txHex {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("unexpected response code 500: 257: txn-already-known"))
			return
		}
		_, _ = w.Write([]byte(`"` + txId + `"`))
	})
	mux.HandleFunc("GET /tx/hash/"+txId, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"txid": "` + txId + `", "blockhash": "hash", "blockheight": 800000, "confirmations": 6, "size": 225}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := whatsonchain.New(provider.Config{
		provider.KeyClient: server.Client(),
		provider.KeyChain:  provider.ChainBsv,
		"url":              server.URL,
		"apikey":           "key",
		"ratelimit":        0,
	})
	require.NoError(t, err)
	return client
}

func TestBroadcast(t *testing.T) {
	client := newClient(t)

	result, err := client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: txHex, Verbose: true})
	require.NoError(t, err)
	require.Equal(t, txId, result.TxId)
	require.Equal(t, "main", result.Details["network"])

	result, err = client.Broadcast(context.Background(), provider.BroadcastRequest{Payload: "00"})
	require.NoError(t, err)
	require.False(t, result.Success())
	require.Contains(t, result.Error, "txn-already-known")
}

func TestStatus(t *testing.T) {
	client := newClient(t)

	status, err := client.Status(context.Background(), provider.StatusRequest{TxId: txId})
	require.NoError(t, err)
	require.Equal(t, &provider.StatusResult{
		Valid:         true,
		Confirmed:     true,
		Confirmations: 6,
		BlockHeight:   800000,
		BlockHash:     "hash",
	}, status)

	status, err = client.Status(context.Background(), provider.StatusRequest{TxId: "00" + txId[2:]})
	require.NoError(t, err)
	require.False(t, status.Valid)
	require.Zero(t, client.GetRate())
}

func TestNew(t *testing.T) {
	client, err := whatsonchain.New(provider.Config{
		provider.KeyClient: http.DefaultClient,
		provider.KeyChain:  provider.ChainBsv,
		"network":          "test",
	})
	require.NoError(t, err)
	require.Equal(t, whatsonchain.DefaultUrl+"/test", client.Url())

	_, err = whatsonchain.New(provider.Config{
		provider.KeyClient: http.DefaultClient,
		provider.KeyChain:  provider.ChainBsv,
		"network":          "regtest",
	})
	require.ErrorContains(t, err, "network failed on oneof")

	require.False(t, whatsonchain.Constructor().Supports(provider.ChainBtc))
}
