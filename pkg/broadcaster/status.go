package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var ErrInvalidTxId = errors.New("invalid transaction id")

// StatusReport maps plugin names to their result.
type StatusReport map[string]*provider.StatusResult

type StatusRequest struct {
	TxId     string
	Verbose  bool
	Callback func(report StatusReport)
}

// Status returns the first valid status any plugin reports for the transaction, with Name set to that plugin.
// A nil result without error means that no plugin knows the transaction.
func (aggregator *Aggregator) Status(ctx context.Context, request StatusRequest) (*provider.StatusResult, error) {
	if err := CheckTxId(request.TxId); err != nil {
		return nil, err
	}

	var mutex sync.Mutex
	report := make(StatusReport)

	var once sync.Once
	winner := make(chan *provider.StatusResult, 1)

	settled := func() {
		if request.Callback != nil {
			request.Callback(report)
		}
	}

	f := aggregator.dispatch(ctx, "status", func(ctx context.Context, plugin livePlugin) error {
		result, err := plugin.Status(ctx, provider.StatusRequest{TxId: request.TxId, Verbose: request.Verbose})
		if err != nil {
			return err
		}
		if result == nil {
			return errors.New("invalid status result")
		}

		mutex.Lock()
		report[plugin.name] = result
		mutex.Unlock()

		if result.Valid {
			once.Do(func() {
				named := *result
				named.Name = plugin.name
				winner <- &named
			})
		}
		return nil
	}, settled)

	select {
	case result := <-winner:
		return result, nil
	case <-f.done:
		select {
		case result := <-winner:
			return result, nil
		default:
			return nil, nil
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CheckTxId makes sure txId is the hex encoding of a 32 byte hash.
func CheckTxId(txId string) error {
	if len(txId) != 2*chainhash.HashSize {
		return fmt.Errorf("%w: %q", ErrInvalidTxId, txId)
	}
	if _, err := chainhash.NewHashFromStr(txId); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTxId, err)
	}
	return nil
}
