// Package boltz uses the chain endpoints of the Boltz API to broadcast and look up transactions.
package boltz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

const (
	Name = "boltz"

	DefaultUrl      = "https://api.boltz.exchange"
	DefaultReferral = "broadcaster"
)

type Settings struct {
	provider.Settings `mapstructure:",squash"`
	Referral          string `mapstructure:"referral"`
}

type broadcastTransactionRequest struct {
	Hex string `json:"hex"`
}

type broadcastTransactionResponse struct {
	Id    string `json:"id"`
	Error string `json:"error"`
}

type transactionResponse struct {
	Hex           string `json:"hex"`
	Confirmations uint64 `json:"confirmations"`
	Error         string `json:"error"`
}

type feeResponse struct {
	Fee float64 `json:"fee"`
}

type Client struct {
	provider.RateCache
	*provider.Http
	currency provider.Chain
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
	settings := Settings{Referral: DefaultReferral}
	if err := config.Decode(&settings); err != nil {
		return nil, err
	}
	client := &Client{
		Http:     provider.NewHttp(settings.Settings, DefaultUrl),
		currency: settings.Chain,
	}
	if settings.Referral != "" {
		client.SetHeader("Referral", settings.Referral)
	}
	return client, nil
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) chainPath(path string) string {
	return fmt.Sprintf("/v2/chain/%s%s", c.currency, path)
}

func (c *Client) Broadcast(ctx context.Context, request provider.BroadcastRequest) (*provider.BroadcastResult, error) {
	code, body, err := c.PostJson(ctx, c.chainPath("/transaction"), broadcastTransactionRequest{Hex: request.Payload})
	if err != nil {
		return nil, err
	}

	var response broadcastTransactionResponse
	if err := json.Unmarshal(body, &response); err != nil || !provider.IsSuccess(code) {
		return provider.BroadcastFailure(provider.ErrorMessage(code, body)), nil
	}
	if response.Error != "" {
		return provider.BroadcastFailure(response.Error), nil
	}
	if response.Id == "" {
		return nil, errors.New("boltz returned no transaction id")
	}

	var details map[string]any
	if request.Verbose {
		details = map[string]any{"url": c.Url(), "currency": c.currency}
	}
	return provider.BroadcastSuccess(response.Id, details), nil
}

func (c *Client) Status(ctx context.Context, request provider.StatusRequest) (*provider.StatusResult, error) {
	var response transactionResponse
	if err := c.GetJson(ctx, c.chainPath("/transaction/"+request.TxId), &response); err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) && statusErr.Code < 500 {
			return &provider.StatusResult{Valid: false}, nil
		}
		return nil, err
	}
	if response.Error != "" || response.Hex == "" {
		return &provider.StatusResult{Valid: false}, nil
	}

	result := &provider.StatusResult{
		Valid:         true,
		Confirmed:     response.Confirmations > 0,
		Confirmations: response.Confirmations,
	}
	if request.Verbose {
		result.Details = map[string]any{"url": c.Url(), "hex": response.Hex}
	}
	return result, nil
}

// RefreshRate caches the fee estimation of boltz in sat/kB.
func (c *Client) RefreshRate(ctx context.Context) error {
	var response feeResponse
	if err := c.GetJson(ctx, c.chainPath("/fee"), &response); err != nil {
		return err
	}
	c.SetRate(response.Fee * 1000)
	return nil
}
