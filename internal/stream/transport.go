package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"price-stream-backend/internal/models"
)

// closeCodeNormal marks an intentional, caller-requested close. Any other
// close code takes the failure path in the client.
const closeCodeNormal = websocket.CloseNormalClosure

// ErrControlNotSupported is returned by transports that have no control
// channel (the relay feed is one-way).
var ErrControlNotSupported = errors.New("transport does not support control messages")

// Handlers receives transport events. OnOpen fires once the connection is
// established, OnMessage once per inbound frame, and exactly one of
// OnClose/OnError terminates the stream.
type Handlers struct {
	OnOpen    func()
	OnMessage func(data []byte)
	OnClose   func(code int, reason string)
	OnError   func(err error)
}

// Transport is a single live connection to a market data feed. Open dials
// and starts delivering events; after Close (or a terminal event) the
// transport is spent and must not be reused.
type Transport interface {
	Open(h Handlers) error
	Send(payload []byte) error
	Close(code int) error
	IsOpen() bool
	Source() models.StreamSource
}

// BinanceStreamURL builds a combined-stream URL subscribing every symbol to
// its 24h ticker and 1 minute kline sub-streams.
func BinanceStreamURL(baseURL string, symbols []string) string {
	streams := make([]string, 0, len(symbols)*2)
	for _, s := range symbols {
		sym := strings.ToLower(s)
		streams = append(streams, sym+"@ticker", sym+"@kline_1m")
	}
	return fmt.Sprintf("%s/stream?streams=%s", strings.TrimRight(baseURL, "/"), strings.Join(streams, "/"))
}

// wsTransport is the primary transport: a gorilla websocket connection to
// the exchange's combined stream endpoint.
type wsTransport struct {
	url string

	mu      sync.Mutex
	conn    *websocket.Conn
	open    bool
	closing bool
}

// NewBinanceTransport creates the primary transport for the given symbols.
func NewBinanceTransport(baseURL string, symbols []string) Transport {
	return &wsTransport{url: BinanceStreamURL(baseURL, symbols)}
}

func (t *wsTransport) Source() models.StreamSource { return models.SourcePrimary }

func (t *wsTransport) Open(h Handlers) error {
	conn, resp, err := websocket.DefaultDialer.Dial(t.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dialing exchange websocket: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("dialing exchange websocket: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.open = true
	t.mu.Unlock()

	if h.OnOpen != nil {
		h.OnOpen()
	}
	go t.readLoop(h)
	return nil
}

func (t *wsTransport) readLoop(h Handlers) {
	for {
		_, msg, err := t.conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			t.open = false
			closing := t.closing
			t.mu.Unlock()

			var ce *websocket.CloseError
			switch {
			case errors.As(err, &ce):
				h.OnClose(ce.Code, ce.Text)
			case closing:
				// Read failed because we tore the connection down ourselves.
				h.OnClose(closeCodeNormal, "")
			default:
				h.OnError(err)
			}
			return
		}
		h.OnMessage(msg)
	}
}

func (t *wsTransport) Send(payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return errors.New("websocket is not open")
	}
	return t.conn.WriteMessage(websocket.TextMessage, payload)
}

func (t *wsTransport) Close(code int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	t.closing = true
	t.open = false
	// Tell the peer why we are leaving, then drop the connection. Write
	// errors here are moot: the socket may already be dead.
	_ = t.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
	return t.conn.Close()
}

func (t *wsTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// sseTransport is the fallback transport: an EventSource-style stream read
// from the relay over a long-lived GET.
type sseTransport struct {
	url string

	mu     sync.Mutex
	cancel context.CancelFunc
	open   bool
	closed bool
}

// NewRelayTransport creates the fallback transport for the given symbols.
func NewRelayTransport(relayURL string, symbols []string) Transport {
	return &sseTransport{
		url: relayURL + "?symbols=" + strings.ToUpper(strings.Join(symbols, ",")),
	}
}

func (t *sseTransport) Source() models.StreamSource { return models.SourceFallback }

func (t *sseTransport) Open(h Handlers) error {
	ctx, cancel := context.WithCancel(context.Background())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		cancel()
		return fmt.Errorf("building relay request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return fmt.Errorf("connecting to relay: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	t.mu.Lock()
	t.cancel = cancel
	t.open = true
	t.mu.Unlock()

	if h.OnOpen != nil {
		h.OnOpen()
	}
	go t.readLoop(resp, h)
	return nil
}

func (t *sseTransport) readLoop(resp *http.Response, h Handlers) {
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		// Only data lines carry payloads; comments, event names and blank
		// separators are skipped.
		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		h.OnMessage([]byte(strings.TrimSpace(payload)))
	}

	t.mu.Lock()
	t.open = false
	closed := t.closed
	t.mu.Unlock()

	if closed {
		h.OnClose(closeCodeNormal, "")
		return
	}
	if err := scanner.Err(); err != nil {
		h.OnError(err)
		return
	}
	// Server ended the stream without us asking for it.
	h.OnClose(websocket.CloseAbnormalClosure, "relay stream ended")
}

func (t *sseTransport) Send([]byte) error { return ErrControlNotSupported }

func (t *sseTransport) Close(int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.open = false
	if t.cancel != nil {
		t.cancel()
	}
	return nil
}

func (t *sseTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}
