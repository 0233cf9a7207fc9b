// Package esplora broadcasts transactions via the REST API of an esplora instance.
package esplora

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

const Name = "esplora"

var DefaultUrls = map[provider.Chain]string{
	provider.ChainBtc:    "https://blockstream.info/api",
	provider.ChainLiquid: "https://blockstream.info/liquid/api",
}

type transactionStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint32 `json:"block_height,omitempty"`
	BlockHash   string `json:"block_hash,omitempty"`
	BlockTime   uint64 `json:"block_time,omitempty"`
}

// Client talks to any esplora compatible API. It is reused by plugins of esplora based services.
type Client struct {
	provider.RateCache
	*provider.Http
	name string
}

func Constructor() provider.Constructor {
	return provider.Constructor{
		Name:   Name,
		Chains: []provider.Chain{provider.ChainBtc, provider.ChainLiquid},
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
	var settings provider.Settings
	if err := config.Decode(&settings); err != nil {
		return nil, err
	}
	return NewClient(Name, settings, DefaultUrls[settings.Chain])
}

// NewClient creates a client for an esplora API. defaultUrl is used if settings do not specify one.
func NewClient(name string, settings provider.Settings, defaultUrl string) (*Client, error) {
	if settings.Url == "" && defaultUrl == "" {
		return nil, errors.New("url is required for chain " + string(settings.Chain))
	}
	return &Client{
		Http: provider.NewHttp(settings, defaultUrl),
		name: name,
	}, nil
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Broadcast(ctx context.Context, request provider.BroadcastRequest) (*provider.BroadcastResult, error) {
	code, body, err := c.Post(ctx, "/tx", "text/plain", []byte(request.Payload))
	if err != nil {
		return nil, err
	}
	if !provider.IsSuccess(code) {
		return provider.BroadcastFailure(provider.ErrorMessage(code, body)), nil
	}

	var details map[string]any
	if request.Verbose {
		details = map[string]any{"url": c.Url()}
	}
	return provider.BroadcastSuccess(strings.TrimSpace(string(body)), details), nil
}

func (c *Client) Status(ctx context.Context, request provider.StatusRequest) (*provider.StatusResult, error) {
	var status transactionStatus
	if err := c.GetJson(ctx, "/tx/"+request.TxId+"/status", &status); err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return &provider.StatusResult{Valid: false}, nil
		}
		return nil, err
	}

	result := &provider.StatusResult{
		Valid:       true,
		Confirmed:   status.Confirmed,
		BlockHeight: status.BlockHeight,
		BlockHash:   status.BlockHash,
	}
	if status.Confirmed {
		height, err := c.GetBlockHeight(ctx)
		if err != nil {
			logger.Debugf("Could not get block height from %s: %v", c.name, err)
		} else if height >= status.BlockHeight {
			result.Confirmations = uint64(height-status.BlockHeight) + 1
		}
	}
	if request.Verbose {
		result.Details = map[string]any{"url": c.Url(), "blockTime": status.BlockTime}
	}
	return result, nil
}

func (c *Client) GetBlockHeight(ctx context.Context) (uint32, error) {
	raw, err := c.Get(ctx, "/blocks/tip/height")
	if err != nil {
		return 0, err
	}

	height, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint32(height), nil
}
