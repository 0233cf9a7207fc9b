package provider

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

type Chain string

const (
	ChainBtc    Chain = "BTC"
	ChainLiquid Chain = "L-BTC"
	ChainBsv    Chain = "BSV"
)

func ParseChain(chain string) (Chain, error) {
	switch strings.ToUpper(chain) {
	case "", string(ChainBtc), "BITCOIN":
		return ChainBtc, nil
	case string(ChainLiquid), "LBTC", "LIQUID":
		return ChainLiquid, nil
	case string(ChainBsv):
		return ChainBsv, nil
	}
	return "", fmt.Errorf("invalid chain: %s", chain)
}

// defaultRates are in satoshis per kilobyte
var defaultRates = map[Chain]float64{
	ChainBtc:    2000,
	ChainLiquid: 100,
	ChainBsv:    500,
}

// DefaultRate is the fee rate in sat/kB assumed for providers which do not report one.
func DefaultRate(chain Chain) float64 {
	if rate, ok := defaultRates[chain]; ok {
		return rate
	}
	return defaultRates[ChainBtc]
}

type BroadcastRequest struct {
	Payload string
	Verbose bool
}

// BroadcastResult is either a success carrying TxId or a failure carrying Error.
type BroadcastResult struct {
	TxId    string         `json:"txid,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func BroadcastSuccess(txId string, details map[string]any) *BroadcastResult {
	return &BroadcastResult{TxId: txId, Details: details}
}

func BroadcastFailure(message string) *BroadcastResult {
	return &BroadcastResult{Error: message}
}

func (result *BroadcastResult) Success() bool {
	return result != nil && result.TxId != ""
}

type StatusRequest struct {
	TxId    string
	Verbose bool
}

type StatusResult struct {
	// Name of the plugin that produced the result, only set on aggregated results
	Name          string         `json:"name,omitempty"`
	Valid         bool           `json:"valid"`
	Confirmed     bool           `json:"confirmed"`
	Confirmations uint64         `json:"confirmations,omitempty"`
	BlockHeight   uint32         `json:"blockHeight,omitempty"`
	BlockHash     string         `json:"blockHash,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// Plugin is a single third party broadcast service.
// Implementations have to be safe for concurrent use.
type Plugin interface {
	Name() string
	Broadcast(ctx context.Context, request BroadcastRequest) (*BroadcastResult, error)
	Status(ctx context.Context, request StatusRequest) (*StatusResult, error)
	// GetRate returns the last known fee rate in sat/kB, or 0 if unknown
	GetRate() float64
}

// RateRefresher is implemented by plugins which can fetch a fresh fee rate.
type RateRefresher interface {
	RefreshRate(ctx context.Context) error
}

type Closer interface {
	Close()
}

type Constructor struct {
	Name string
	// Chains the plugin can serve; empty means every chain
	Chains []Chain
	New    func(config Config) (Plugin, error)
}

func (constructor Constructor) Supports(chain Chain) bool {
	return len(constructor.Chains) == 0 || slices.Contains(constructor.Chains, chain)
}
