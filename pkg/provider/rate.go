package provider

import (
	"math"
	"sync/atomic"
)

// RateCache holds the last known fee rate of a plugin and implements GetRate.
type RateCache struct {
	bits atomic.Uint64
}

func (cache *RateCache) GetRate() float64 {
	return math.Float64frombits(cache.bits.Load())
}

func (cache *RateCache) SetRate(rate float64) {
	if math.IsNaN(rate) || rate < 0 {
		rate = 0
	}
	cache.bits.Store(math.Float64bits(rate))
}
