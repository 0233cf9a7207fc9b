package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
)

var ErrNoResponse = errors.New("no provider returned a usable response")

// BroadcastError is returned when every plugin rejected the transaction.
type BroadcastError struct {
	// Reason is the first rejection that was received
	Reason string
}

func (err *BroadcastError) Error() string {
	return err.Reason
}

// BroadcastReport maps plugin names to their result.
type BroadcastReport map[string]*provider.BroadcastResult

type BroadcastRequest struct {
	// Tx is a hex string, raw bytes, a *wire.MsgTx or a Serializer
	Tx      any
	Verbose bool
	// Callback receives the results of all plugins once every attempt settled
	Callback func(report BroadcastReport)
}

// Broadcast sends the transaction via all plugins and returns as soon as the first one accepted it.
// The remaining attempts keep running in the background until request.Callback has been called.
// If no plugin accepts the transaction a *BroadcastError with the first rejection is returned,
// or ErrNoResponse if none of the plugins answered at all.
func (aggregator *Aggregator) Broadcast(ctx context.Context, request BroadcastRequest) (*provider.BroadcastResult, error) {
	payload, err := EncodeTransaction(request.Tx)
	if err != nil {
		return nil, err
	}

	var mutex sync.Mutex
	var rejection *BroadcastError
	report := make(BroadcastReport)

	var once sync.Once
	winner := make(chan *provider.BroadcastResult, 1)

	settled := func() {
		if request.Callback != nil {
			request.Callback(report)
		}
	}

	f := aggregator.dispatch(ctx, "broadcast", func(ctx context.Context, plugin livePlugin) error {
		result, err := plugin.Broadcast(ctx, provider.BroadcastRequest{Payload: payload, Verbose: request.Verbose})
		if err != nil {
			return err
		}
		if result == nil || (!result.Success() && result.Error == "") {
			return errors.New("invalid broadcast result")
		}

		mutex.Lock()
		report[plugin.name] = result
		if !result.Success() && rejection == nil {
			rejection = &BroadcastError{Reason: result.Error}
		}
		mutex.Unlock()

		if result.Success() {
			logger.Debugf("Transaction %s broadcast via %s", result.TxId, plugin.name)
			once.Do(func() {
				winner <- result
			})
		} else {
			logger.Debugf("Plugin %s rejected transaction: %s", plugin.name, result.Error)
		}
		return nil
	}, settled)

	select {
	case result := <-winner:
		return result, nil
	case <-f.done:
		// a winner is always sent before its attempt returns
		select {
		case result := <-winner:
			return result, nil
		default:
		}
		mutex.Lock()
		defer mutex.Unlock()
		if rejection != nil {
			return nil, rejection
		}
		if thrown := f.thrownErrors(); thrown != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoResponse, thrown)
		}
		return nil, ErrNoResponse
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
