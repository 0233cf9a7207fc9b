// Package client is a Go client for the REST API of broadcasterd.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/BoltzExchange/broadcaster/pkg/api"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

const DefaultUrl = "http://127.0.0.1:9004"

// Error is returned when the daemon answers with an error status.
type Error struct {
	Code    int
	Message string
}

func (err *Error) Error() string {
	return fmt.Sprintf("broadcasterd returned %d: %s", err.Code, err.Message)
}

type Client struct {
	http *provider.Http
}

func NewClient(address string) *Client {
	return &Client{
		http: provider.NewHttp(provider.Settings{Client: provider.NewHttpClient(0), Url: address}, DefaultUrl),
	}
}

func NewClientWithDoer(address string, doer provider.Doer) *Client {
	return &Client{http: provider.NewHttp(provider.Settings{Client: doer, Url: address}, DefaultUrl)}
}

func (client *Client) Url() string {
	return client.http.Url()
}

func get[T any](ctx context.Context, client *Client, path string) (*T, error) {
	var response T
	if err := client.http.GetJson(ctx, path, &response); err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) {
			return nil, &Error{Code: statusErr.Code, Message: provider.ErrorMessage(statusErr.Code, []byte(statusErr.Body))}
		}
		return nil, err
	}
	return &response, nil
}

func (client *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	return get[api.HealthResponse](ctx, client, api.HealthPath)
}

func (client *Client) GetVersion(ctx context.Context) (*api.VersionResponse, error) {
	return get[api.VersionResponse](ctx, client, api.VersionPath)
}

func (client *Client) GetProviders(ctx context.Context) (*api.ProvidersResponse, error) {
	return get[api.ProvidersResponse](ctx, client, api.ProvidersPath)
}

func (client *Client) GetFee(ctx context.Context) (*api.FeeResponse, error) {
	return get[api.FeeResponse](ctx, client, api.FeePath)
}

// Broadcast returns the response even if the broadcast failed, since it might contain the report.
func (client *Client) Broadcast(ctx context.Context, request api.BroadcastRequest) (*api.BroadcastResponse, error) {
	code, body, err := client.http.PostJson(ctx, api.BroadcastPath, request)
	if err != nil {
		return nil, err
	}
	var response api.BroadcastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &Error{Code: code, Message: provider.ErrorMessage(code, body)}
	}
	if !provider.IsSuccess(code) {
		return &response, &Error{Code: code, Message: response.Error}
	}
	return &response, nil
}

// Status returns a nil result without error if the transaction is not known to any provider.
func (client *Client) Status(ctx context.Context, txId string, verbose bool, wait bool) (*api.StatusResponse, error) {
	query := url.Values{}
	if verbose {
		query.Set("verbose", "true")
	}
	if wait {
		query.Set("wait", "true")
	}
	path := api.StatusPath + "/" + url.PathEscape(txId)
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response api.StatusResponse
	err := client.http.GetJson(ctx, path, &response)
	var statusErr *provider.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusNotFound {
			// the body still carries the report
			_ = json.Unmarshal([]byte(statusErr.Body), &response)
			return &response, nil
		}
		return nil, &Error{Code: statusErr.Code, Message: provider.ErrorMessage(statusErr.Code, []byte(statusErr.Body))}
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}
