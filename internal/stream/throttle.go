package stream

import (
	"math"
	"sync"
	"time"

	"price-stream-backend/internal/models"
)

const (
	// DefaultThrottleDelay bounds how often one symbol may emit one kind of
	// update. The public setter clamps to [MinThrottleDelay, MaxThrottleDelay].
	DefaultThrottleDelay = 100 * time.Millisecond
	MinThrottleDelay     = 50 * time.Millisecond
	MaxThrottleDelay     = time.Second

	// minPriceDeltaRatio is the relative price move (0.01%) below which a
	// price update carries no new information and is suppressed.
	minPriceDeltaRatio = 0.0001
)

type updateKind int

const (
	kindPrice updateKind = iota
	kindKline
)

type emitKey struct {
	symbol string
	kind   updateKind
}

// throttleFilter gates updates in front of the publish step. It bounds the
// per-symbol emission rate and, for price updates, drops near-identical
// prices. It never modifies the updates themselves.
type throttleFilter struct {
	mu        sync.Mutex
	interval  time.Duration
	lastEmit  map[emitKey]time.Time
	lastPrice map[string]float64
	now       func() time.Time
}

func newThrottleFilter(interval time.Duration) *throttleFilter {
	return &throttleFilter{
		interval:  clampThrottleDelay(interval),
		lastEmit:  make(map[emitKey]time.Time),
		lastPrice: make(map[string]float64),
		now:       time.Now,
	}
}

func clampThrottleDelay(d time.Duration) time.Duration {
	if d < MinThrottleDelay {
		return MinThrottleDelay
	}
	if d > MaxThrottleDelay {
		return MaxThrottleDelay
	}
	return d
}

// SetInterval changes the emission interval, silently clamping out-of-range
// values.
func (f *throttleFilter) SetInterval(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = clampThrottleDelay(d)
}

func (f *throttleFilter) Interval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

// AdmitPrice reports whether a price update should be emitted, recording it
// as the last emission if so. Updates are dropped when they arrive inside
// the throttle window or when the price moved less than minPriceDeltaRatio
// against the last emitted price.
func (f *throttleFilter) AdmitPrice(u models.PriceUpdate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := emitKey{symbol: u.Symbol, kind: kindPrice}
	now := f.now()
	if last, ok := f.lastEmit[key]; ok {
		if now.Sub(last) < f.interval {
			return false
		}
		if prev, ok := f.lastPrice[u.Symbol]; ok && prev != 0 {
			if math.Abs(u.Price-prev)/math.Abs(prev) < minPriceDeltaRatio {
				return false
			}
		}
	}

	f.lastEmit[key] = now
	f.lastPrice[u.Symbol] = u.Price
	return true
}

// AdmitKline reports whether a kline update should be emitted. Closed
// candles are always structurally meaningful, so only the time gate
// applies.
func (f *throttleFilter) AdmitKline(u models.KlineUpdate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := emitKey{symbol: u.Symbol, kind: kindKline}
	now := f.now()
	if last, ok := f.lastEmit[key]; ok && now.Sub(last) < f.interval {
		return false
	}
	f.lastEmit[key] = now
	return true
}

// Reset forgets all per-symbol state so a fresh session does not suppress
// early updates based on stale history.
func (f *throttleFilter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmit = make(map[emitKey]time.Time)
	f.lastPrice = make(map[string]float64)
}
