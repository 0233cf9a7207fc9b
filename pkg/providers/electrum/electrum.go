// Package electrum broadcasts transactions via an electrum server.
package electrum

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/go-electrum/electrum"
)

const (
	Name = "electrum"

	pingInterval = 60 * time.Second
)

var notFoundMessages = []string{
	"no such mempool or blockchain transaction",
	"not found",
}

type Client struct {
	provider.RateCache
	client  *electrum.Client
	url     string
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
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

// New connects to the server at url, which has to use the ssl:// or tcp:// scheme.
func New(config provider.Config) (*Client, error) {
	var settings provider.Settings
	if err := config.Decode(&settings); err != nil {
		return nil, err
	}
	if settings.Url == "" {
		return nil, errors.New("invalid config: url is required")
	}

	parsed, err := url.Parse(settings.Url)
	if err != nil {
		return nil, err
	}

	c := &Client{url: settings.Url, timeout: settings.Timeout}
	if c.timeout == 0 {
		c.timeout = provider.DefaultTimeout
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	connectCtx, connectCancel := c.timeoutContext(c.ctx)
	defer connectCancel()
	switch strings.ToLower(parsed.Scheme) {
	case "ssl", "tls":
		c.client, err = electrum.NewClientSSL(connectCtx, parsed.Host, &tls.Config{})
	case "tcp":
		c.client, err = electrum.NewClientTCP(connectCtx, parsed.Host)
	default:
		c.cancel()
		return nil, fmt.Errorf("invalid electrum url scheme: %s", parsed.Scheme)
	}
	if err != nil {
		c.cancel()
		return nil, fmt.Errorf("could not connect to %s: %w", settings.Url, err)
	}

	// Making sure we declare to the server what protocol we want to use
	versionCtx, versionCancel := c.timeoutContext(c.ctx)
	defer versionCancel()
	if _, _, err := c.client.ServerVersion(versionCtx); err != nil {
		c.Close()
		return nil, err
	}

	go c.keepAlive()

	return c, nil
}

func (c *Client) timeoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) keepAlive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if c.client.IsShutdown() {
				return
			}
			ctx, cancel := c.timeoutContext(c.ctx)
			if err := c.client.Ping(ctx); err != nil {
				logger.Errorf("Failed to ping electrum server %s: %s", c.url, err)
			}
			cancel()
		}
	}
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) Broadcast(ctx context.Context, request provider.BroadcastRequest) (*provider.BroadcastResult, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()
	txId, err := c.client.BroadcastTransaction(ctx, request.Payload)
	if err != nil {
		if c.client.IsShutdown() || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		// the server is reachable, so it rejected the transaction
		return provider.BroadcastFailure(err.Error()), nil
	}

	var details map[string]any
	if request.Verbose {
		details = map[string]any{"url": c.url}
	}
	return provider.BroadcastSuccess(txId, details), nil
}

func (c *Client) Status(ctx context.Context, request provider.StatusRequest) (*provider.StatusResult, error) {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()
	transaction, err := c.client.GetTransaction(ctx, request.TxId)
	if err != nil {
		if isNotFound(err) {
			return &provider.StatusResult{Valid: false}, nil
		}
		return nil, err
	}

	confirmations := uint64(max(transaction.Confirmations, 0))
	result := &provider.StatusResult{
		Valid:         true,
		Confirmed:     confirmations > 0,
		Confirmations: confirmations,
	}
	if request.Verbose {
		result.Details = map[string]any{"url": c.url}
	}
	return result, nil
}

func isNotFound(err error) bool {
	message := strings.ToLower(err.Error())
	for _, notFound := range notFoundMessages {
		if strings.Contains(message, notFound) {
			return true
		}
	}
	return false
}

// RefreshRate caches the fee estimation for confirmation within 2 blocks in sat/kB.
func (c *Client) RefreshRate(ctx context.Context) error {
	ctx, cancel := c.timeoutContext(ctx)
	defer cancel()
	fee, err := c.client.GetFee(ctx, 2)
	if err != nil {
		return err
	}
	c.SetRate(float64(fee) * 1000)
	return nil
}

func (c *Client) Close() {
	c.cancel()
	if c.client != nil {
		c.client.Shutdown()
	}
}
