// Package api contains the types of the REST API of broadcasterd.
package api

import "github.com/BoltzExchange/broadcaster/pkg/provider"

const (
	HealthPath    = "/health"
	VersionPath   = "/v1/version"
	ProvidersPath = "/v1/providers"
	BroadcastPath = "/v1/broadcast"
	StatusPath    = "/v1/status"
	FeePath       = "/v1/fee"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type VersionResponse struct {
	Version string         `json:"version"`
	Chain   provider.Chain `json:"chain"`
}

type ProvidersResponse struct {
	Chain     provider.Chain `json:"chain"`
	Providers []string       `json:"providers"`
	// Failures maps providers which could not be started to the reason
	Failures map[string]string `json:"failures,omitempty"`
}

type BroadcastRequest struct {
	Hex     string `json:"hex" validate:"required,hexadecimal"`
	Verbose bool   `json:"verbose"`
	// Wait delays the response until every provider answered, so it includes the full report
	Wait bool `json:"wait"`
}

type BroadcastResponse struct {
	Result *provider.BroadcastResult            `json:"result,omitempty"`
	Report map[string]*provider.BroadcastResult `json:"report,omitempty"`
	Error  string                               `json:"error,omitempty"`
}

type StatusResponse struct {
	Result *provider.StatusResult            `json:"result,omitempty"`
	Report map[string]*provider.StatusResult `json:"report,omitempty"`
	Error  string                            `json:"error,omitempty"`
}

type FeeResponse struct {
	FeePerKb    float64 `json:"feePerKb"`
	DefaultRate float64 `json:"defaultRate"`
}
