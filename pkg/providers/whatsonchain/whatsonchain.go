// Package whatsonchain broadcasts BSV transactions via the WhatsOnChain API.
package whatsonchain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

const (
	Name = "whatsonchain"

	DefaultUrl = "https://api.whatsonchain.com/v1/bsv"
	// DefaultRateLimit is the request limit of the free tier per second
	DefaultRateLimit = 3
)

type Settings struct {
	provider.Settings `mapstructure:",squash"`
	Network           string `mapstructure:"network" validate:"oneof=main test stn"`
}

type transaction struct {
	TxId          string `json:"txid"`
	BlockHash     string `json:"blockhash"`
	BlockHeight   uint32 `json:"blockheight"`
	Confirmations uint64 `json:"confirmations"`
	Size          uint64 `json:"size"`
}

type Client struct {
	provider.RateCache
	*provider.Http
	network string
}

func Constructor() provider.Constructor {
	return provider.Constructor{
		Name:   Name,
		Chains: []provider.Chain{provider.ChainBsv},
		New: func(config provider.Config) (provider.Plugin, error) {
			client, err := New(config)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

func New(config provider.Config) (*Client, error) {
	settings := Settings{Network: "main"}
	settings.RateLimit = DefaultRateLimit
	if err := config.Decode(&settings); err != nil {
		return nil, err
	}
	if settings.Url == "" {
		settings.Url = DefaultUrl + "/" + settings.Network
	}
	client := &Client{
		Http:    provider.NewHttp(settings.Settings, ""),
		network: settings.Network,
	}
	if settings.ApiKey != "" {
		client.SetHeader("Authorization", settings.ApiKey)
	}
	return client, nil
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) Broadcast(ctx context.Context, request provider.BroadcastRequest) (*provider.BroadcastResult, error) {
	code, body, err := c.PostJson(ctx, "/tx/raw", map[string]string{"txhex": request.Payload})
	if err != nil {
		return nil, err
	}
	if !provider.IsSuccess(code) {
		return provider.BroadcastFailure(provider.ErrorMessage(code, body)), nil
	}

	// the txid is returned as JSON string
	var txId string
	if err := json.Unmarshal(body, &txId); err != nil {
		txId = strings.Trim(strings.TrimSpace(string(body)), `"`)
	}
	if txId == "" {
		return nil, errors.New("whatsonchain returned no transaction id")
	}

	var details map[string]any
	if request.Verbose {
		details = map[string]any{"url": c.Url(), "network": c.network}
	}
	return provider.BroadcastSuccess(txId, details), nil
}

func (c *Client) Status(ctx context.Context, request provider.StatusRequest) (*provider.StatusResult, error) {
	var tx transaction
	if err := c.GetJson(ctx, "/tx/hash/"+request.TxId, &tx); err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return &provider.StatusResult{Valid: false}, nil
		}
		return nil, err
	}
	if tx.TxId == "" {
		return &provider.StatusResult{Valid: false}, nil
	}

	result := &provider.StatusResult{
		Valid:         true,
		Confirmed:     tx.Confirmations > 0,
		Confirmations: tx.Confirmations,
		BlockHeight:   tx.BlockHeight,
		BlockHash:     tx.BlockHash,
	}
	if request.Verbose {
		result.Details = map[string]any{"url": c.Url(), "size": tx.Size}
	}
	return result, nil
}
