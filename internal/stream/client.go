package stream

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"price-stream-backend/internal/models"
)

// DefaultMaxReconnectAttempts bounds automatic recovery; past it the client
// raises maxReconnectAttemptsReached and goes quiet until the next Connect.
const DefaultMaxReconnectAttempts = 5

// Config holds the endpoints and tuning for a stream client.
type Config struct {
	PrimaryWSBaseURL     string
	FallbackURL          string
	ThrottleDelay        time.Duration
	MaxReconnectAttempts int
}

type transportFactory func(source models.StreamSource, symbols []string) Transport

// Client maintains a live price/kline feed for a set of symbols over a
// primary websocket transport with an SSE relay fallback. All mutable state
// is owned by the client and guarded by one mutex; transport callbacks and
// API calls may arrive from any goroutine.
//
// Connect, Disconnect and Subscribe return immediately; outcomes surface
// through the registered event listeners.
type Client struct {
	*emitter

	mu           sync.Mutex
	factory      transportFactory
	maxAttempts  int
	transport    Transport // the single active transport, nil when down
	primary      Transport // last primary transport, probed on reconnect
	source       models.StreamSource
	connected    bool
	symbols      map[string]struct{}
	gen          int // connect epoch; events from older epochs are ignored
	armed        bool
	attempts     int
	timer        *reconnectTimer
	filter       *throttleFilter
	sessionStart time.Time
	emitted      int64
	ctrlID       int
	now          func() time.Time
}

// NewClient creates a disconnected client. Each client owns its own state;
// nothing here is process-global, so tests can run isolated instances.
func NewClient(cfg Config) *Client {
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	throttle := DefaultThrottleDelay
	if cfg.ThrottleDelay > 0 {
		throttle = cfg.ThrottleDelay
	}

	c := &Client{
		emitter:     newEmitter(),
		maxAttempts: cfg.MaxReconnectAttempts,
		source:      models.SourceNone,
		symbols:     make(map[string]struct{}),
		timer:       newReconnectTimer(),
		filter:      newThrottleFilter(throttle),
		now:         time.Now,
	}
	c.factory = func(source models.StreamSource, symbols []string) Transport {
		if source == models.SourceFallback {
			return NewRelayTransport(cfg.FallbackURL, symbols)
		}
		return NewBinanceTransport(cfg.PrimaryWSBaseURL, symbols)
	}
	return c
}

// Connect opens the primary transport for the given symbols. Calling it
// while connected tears the existing transport down gracefully and starts
// over with the new set; a connect still in flight is superseded, not run
// concurrently. Re-arms auto-reconnect and resets session counters.
func (c *Client) Connect(symbols []string) {
	c.mu.Lock()
	c.armed = true
	c.attempts = 0
	c.sessionStart = c.now()
	c.emitted = 0
	c.symbols = make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		c.symbols[strings.ToUpper(s)] = struct{}{}
	}
	c.timer.Cancel()
	if t := c.transport; t != nil {
		c.transport = nil
		c.connected = false
		go t.Close(closeCodeNormal)
	}
	c.gen++
	gen := c.gen
	syms := c.symbolList()
	c.mu.Unlock()

	go c.dial(gen, models.SourcePrimary, syms)
}

// Disconnect disarms auto-reconnect, cancels any pending reconnect, closes
// the transport with the intentional close code and clears throttle state.
// The client emits nothing further until the next Connect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.armed = false
	c.timer.Cancel()
	c.gen++
	wasConnected := c.connected
	c.connected = false
	t := c.transport
	c.transport = nil
	c.source = models.SourceNone
	c.filter.Reset()
	c.mu.Unlock()

	if t != nil {
		_ = t.Close(closeCodeNormal)
	}
	if wasConnected {
		c.emitDisconnected(models.SourceManual)
	}
}

// Subscribe adds symbols to the tracked set. When connected to the primary
// transport a live SUBSCRIBE control message is sent as well; a send
// failure is not fatal and surfaces through the error event.
func (c *Client) Subscribe(symbols []string) {
	c.changeSubscription(symbols, true)
}

// Unsubscribe removes symbols from the tracked set, mirroring Subscribe.
func (c *Client) Unsubscribe(symbols []string) {
	c.changeSubscription(symbols, false)
}

func (c *Client) changeSubscription(symbols []string, add bool) {
	c.mu.Lock()
	params := make([]string, 0, len(symbols)*2)
	for _, s := range symbols {
		sym := strings.ToUpper(s)
		_, tracked := c.symbols[sym]
		if add == tracked {
			continue
		}
		if add {
			c.symbols[sym] = struct{}{}
		} else {
			delete(c.symbols, sym)
		}
		low := strings.ToLower(sym)
		params = append(params, low+"@ticker", low+"@kline_1m")
	}
	t := c.transport
	live := c.connected && c.source == models.SourcePrimary
	c.ctrlID++
	id := c.ctrlID
	c.mu.Unlock()

	// The relay feed has no control channel; while on fallback the set only
	// affects the next connect.
	if !live || t == nil || len(params) == 0 {
		return
	}
	method := "SUBSCRIBE"
	if !add {
		method = "UNSUBSCRIBE"
	}
	msg, err := json.Marshal(models.SubscribeRequest{Method: method, Params: params, ID: id})
	if err != nil {
		return
	}
	if err := t.Send(msg); err != nil {
		c.emitError(models.SourcePrimary, fmt.Errorf("sending %s: %w", strings.ToLower(method), err))
	}
}

// SetThrottleDelay changes the per-symbol emission interval. Out-of-range
// values are clamped to [50ms, 1000ms], not rejected.
func (c *Client) SetThrottleDelay(ms int) {
	c.filter.SetInterval(time.Duration(ms) * time.Millisecond)
}

// Status returns a snapshot of the connection state. It never blocks on
// I/O.
func (c *Client) Status() models.ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	source := models.SourceNone
	if c.connected {
		source = c.source
	}
	return models.ConnectionStatus{
		Connected:         c.connected,
		Source:            source,
		SubscribedSymbols: c.symbolList(),
		ReconnectAttempts: c.attempts,
	}
}

// Metrics returns session-level counters. UpdateFrequency is emitted
// updates per second since the session started.
func (c *Client) Metrics() models.StreamMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	var uptimeMs int64
	var freq float64
	if !c.sessionStart.IsZero() {
		elapsed := c.now().Sub(c.sessionStart)
		uptimeMs = elapsed.Milliseconds()
		if secs := elapsed.Seconds(); secs > 0 {
			freq = float64(c.emitted) / secs
		}
	}
	return models.StreamMetrics{
		UpdateFrequency:    freq,
		TrackedSymbolCount: len(c.symbols),
		ReconnectAttempts:  c.attempts,
		UptimeMs:           uptimeMs,
	}
}

// symbolList returns the tracked symbols sorted. Callers must hold c.mu.
func (c *Client) symbolList() []string {
	syms := make([]string, 0, len(c.symbols))
	for s := range c.symbols {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

func (c *Client) dial(gen int, source models.StreamSource, symbols []string) {
	t := c.factory(source, symbols)
	h := Handlers{
		OnOpen:    func() { c.handleOpen(gen, t) },
		OnMessage: func(data []byte) { c.handleMessage(gen, source, data) },
		OnClose:   func(code int, _ string) { c.handleClose(gen, source, code) },
		OnError:   func(err error) { c.handleFailure(gen, source, err) },
	}
	if err := t.Open(h); err != nil {
		c.handleFailure(gen, source, err)
	}
}

func (c *Client) handleOpen(gen int, t Transport) {
	c.mu.Lock()
	if gen != c.gen {
		// A newer connect or a disconnect superseded this dial.
		c.mu.Unlock()
		go t.Close(closeCodeNormal)
		return
	}
	c.transport = t
	c.connected = true
	c.source = t.Source()
	if c.source == models.SourcePrimary {
		c.primary = t
	}
	c.attempts = 0
	src := c.source
	c.mu.Unlock()

	c.emitConnected(src)
}

func (c *Client) handleMessage(gen int, source models.StreamSource, raw []byte) {
	c.mu.Lock()
	stale := gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}

	if source == models.SourceFallback {
		if u := decodeFallbackFrame(raw); u != nil && c.filter.AdmitPrice(*u) {
			c.countEmitted()
			c.emitPrice(*u)
		}
		return
	}

	price, kline := decodePrimaryFrame(raw)
	switch {
	case price != nil:
		if c.filter.AdmitPrice(*price) {
			c.countEmitted()
			c.emitPrice(*price)
		}
	case kline != nil:
		if c.filter.AdmitKline(*kline) {
			c.countEmitted()
			c.emitKline(*kline)
		}
	}
}

func (c *Client) countEmitted() {
	c.mu.Lock()
	c.emitted++
	c.mu.Unlock()
}

func (c *Client) handleClose(gen int, source models.StreamSource, code int) {
	// An intentional close never takes the failure path; whoever requested
	// it already emitted the right events.
	if code == closeCodeNormal {
		return
	}
	c.handleFailure(gen, source, nil)
}

// handleFailure is the single entry point for unintentional transport loss:
// close with a non-intentional code, a transport-level error, or a failed
// dial (err carries the detail for the latter two).
func (c *Client) handleFailure(gen int, source models.StreamSource, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	// Invalidate any further events from this transport generation before
	// tearing it down.
	c.gen++
	wasConnected := c.connected
	c.connected = false
	if t := c.transport; t != nil {
		c.transport = nil
		go t.Close(closeCodeNormal)
	}

	exhausted := false
	if c.armed {
		if c.attempts >= c.maxAttempts {
			exhausted = true
		} else {
			c.attempts++
			delay := time.Duration(1<<uint(c.attempts)) * time.Second
			c.timer.Schedule(delay, c.retry)
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.emitError(source, err)
	}
	if wasConnected {
		c.emitDisconnected(source)
	}
	if exhausted {
		c.emitMaxReconnectAttemptsReached()
	}
}

// retry fires when the backoff delay elapses. The fallback is strictly
// lower fidelity (no klines), so it is only chosen when the primary socket
// is structurally not open.
func (c *Client) retry() {
	c.mu.Lock()
	if !c.armed || c.connected {
		c.mu.Unlock()
		return
	}
	source := models.SourcePrimary
	if c.primary == nil || !c.primary.IsOpen() {
		source = models.SourceFallback
	}
	c.gen++
	gen := c.gen
	syms := c.symbolList()
	c.mu.Unlock()

	go c.dial(gen, source, syms)
}
