// Package mempool broadcasts via mempool.space style APIs and reports their fee recommendations.
package mempool

import (
	"context"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers/esplora"
)

const Name = "mempool"

var DefaultUrls = map[provider.Chain]string{
	provider.ChainBtc:    "https://mempool.space/api",
	provider.ChainLiquid: "https://liquid.network/api",
}

type feeEstimation struct {
	FastestFee  float64 `json:"fastestFee"`
	HalfHourFee float64 `json:"halfHourFee"`
	HourFee     float64 `json:"hourFee"`
	EconomyFee  float64 `json:"economyFee"`
	MinimumFee  float64 `json:"minimumFee"`
}

// Client is an esplora client which additionally knows the fee recommendations of mempool.space
type Client struct {
	*esplora.Client
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
	client, err := esplora.NewClient(Name, settings, DefaultUrls[settings.Chain])
	if err != nil {
		return nil, err
	}
	return &Client{Client: client}, nil
}

func (c *Client) getFeeRecommendation(ctx context.Context) (*feeEstimation, error) {
	var fees feeEstimation
	if err := c.GetJson(ctx, "/v1/fees/recommended", &fees); err != nil {
		return nil, err
	}
	return &fees, nil
}

// RefreshRate caches the half hour fee recommendation in sat/kB.
func (c *Client) RefreshRate(ctx context.Context) error {
	fees, err := c.getFeeRecommendation(ctx)
	if err != nil {
		return err
	}
	c.SetRate(fees.HalfHourFee * 1000)
	return nil
}
