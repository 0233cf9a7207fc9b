package broadcaster

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

func (aggregator *Aggregator) DefaultRate() float64 {
	return aggregator.defaultRate
}

// FeePerKb returns the lowest fee rate in sat/kB known by any plugin.
// Plugins without a rate count as the default rate, which is also returned when there are no plugins.
func (aggregator *Aggregator) FeePerKb() float64 {
	if len(aggregator.plugins) == 0 {
		return aggregator.defaultRate
	}
	feePerKb := math.Inf(1)
	for _, plugin := range aggregator.plugins {
		rate := aggregator.pluginRate(plugin)
		if math.IsNaN(rate) || rate <= 0 {
			rate = aggregator.defaultRate
		}
		feePerKb = min(feePerKb, rate)
	}
	return feePerKb
}

func (aggregator *Aggregator) pluginRate(plugin livePlugin) (rate float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Plugin %s panicked while getting rate: %v", plugin.name, r)
			rate = 0
		}
	}()
	return plugin.GetRate()
}

// RefreshRates asks every plugin which implements provider.RateRefresher for a fresh rate.
// An error is only returned if all of them failed.
func (aggregator *Aggregator) RefreshRates(ctx context.Context) error {
	var eg errgroup.Group
	var mutex sync.Mutex
	var merr multierror.Error
	refreshers := 0

	for _, plugin := range aggregator.plugins {
		refresher, ok := plugin.Plugin.(provider.RateRefresher)
		if !ok {
			continue
		}
		refreshers++
		eg.Go(func() error {
			err := safeCall(func() error { return refresher.RefreshRate(ctx) })
			if err != nil {
				logger.Warnf("Could not refresh rate of %s: %v", plugin.name, err)
				mutex.Lock()
				merr.Errors = append(merr.Errors, fmt.Errorf("%s: %w", plugin.name, err))
				mutex.Unlock()
				return err
			}
			logger.Sillyf("Rate of %s: %f sat/kB", plugin.name, plugin.GetRate())
			return nil
		})
	}

	// the group does not cancel, so every refresher ran even if one failed
	if err := eg.Wait(); err == nil {
		return nil
	}
	if len(merr.Errors) == refreshers {
		return fmt.Errorf("all providers failed: %w", &merr)
	}
	return nil
}

// WatchRates refreshes the rates every interval until ctx is done.
func (aggregator *Aggregator) WatchRates(ctx context.Context, interval time.Duration) {
	refresh := func() {
		if err := aggregator.RefreshRates(ctx); err != nil {
			logger.Warnf("Could not refresh fee rates: %v", err)
		} else {
			logger.Debugf("Fee rate: %f sat/kB", aggregator.FeePerKb())
		}
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
