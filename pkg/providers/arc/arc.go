// Package arc broadcasts BSV transactions via an ARC instance.
package arc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

const (
	Name = "arc"

	DefaultUrl = "https://arc.taal.com"
)

// statuses that mean the transaction will never be mined
var rejectedStatuses = []string{"REJECTED", "DOUBLE_SPEND_ATTEMPTED"}

type transactionResponse struct {
	TxId        string `json:"txid"`
	TxStatus    string `json:"txStatus"`
	BlockHash   string `json:"blockHash"`
	BlockHeight uint32 `json:"blockHeight"`
	ExtraInfo   string `json:"extraInfo"`
	Title       string `json:"title"`
	Detail      string `json:"detail"`
}

type policyResponse struct {
	Policy struct {
		MiningFee struct {
			Satoshis float64 `json:"satoshis"`
			Bytes    float64 `json:"bytes"`
		} `json:"miningFee"`
	} `json:"policy"`
}

type Client struct {
	provider.RateCache
	*provider.Http
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
	var settings provider.Settings
	if err := config.Decode(&settings); err != nil {
		return nil, err
	}
	client := &Client{Http: provider.NewHttp(settings, DefaultUrl)}
	if settings.ApiKey != "" {
		client.SetHeader("Authorization", "Bearer "+settings.ApiKey)
	}
	return client, nil
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) Broadcast(ctx context.Context, request provider.BroadcastRequest) (*provider.BroadcastResult, error) {
	code, body, err := c.PostJson(ctx, "/v1/tx", map[string]string{"rawTx": request.Payload})
	if err != nil {
		return nil, err
	}
	if !provider.IsSuccess(code) {
		return provider.BroadcastFailure(provider.ErrorMessage(code, body)), nil
	}

	var response transactionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if slices.Contains(rejectedStatuses, response.TxStatus) {
		message := response.ExtraInfo
		if message == "" {
			message = response.TxStatus
		}
		return provider.BroadcastFailure(message), nil
	}
	if response.TxId == "" {
		return nil, errors.New("arc returned no transaction id")
	}

	var details map[string]any
	if request.Verbose {
		details = map[string]any{"url": c.Url(), "txStatus": response.TxStatus}
	}
	return provider.BroadcastSuccess(response.TxId, details), nil
}

func (c *Client) Status(ctx context.Context, request provider.StatusRequest) (*provider.StatusResult, error) {
	var response transactionResponse
	if err := c.GetJson(ctx, "/v1/tx/"+request.TxId, &response); err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return &provider.StatusResult{Valid: false}, nil
		}
		return nil, err
	}

	result := &provider.StatusResult{
		Valid:       response.TxId != "" && !slices.Contains(rejectedStatuses, response.TxStatus),
		Confirmed:   response.TxStatus == "MINED",
		BlockHeight: response.BlockHeight,
		BlockHash:   response.BlockHash,
	}
	if request.Verbose {
		result.Details = map[string]any{"url": c.Url(), "txStatus": response.TxStatus}
	}
	return result, nil
}

// RefreshRate caches the mining fee of the ARC policy in sat/kB.
func (c *Client) RefreshRate(ctx context.Context) error {
	var response policyResponse
	if err := c.GetJson(ctx, "/v1/policy", &response); err != nil {
		return err
	}
	fee := response.Policy.MiningFee
	if fee.Bytes <= 0 {
		return errors.New("invalid mining fee in policy")
	}
	c.SetRate(fee.Satoshis / fee.Bytes * 1000)
	return nil
}
