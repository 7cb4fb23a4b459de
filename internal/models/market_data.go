package models

import "time"

// StreamSource identifies which transport an event came from.
type StreamSource string

const (
	SourcePrimary  StreamSource = "primary"
	SourceFallback StreamSource = "fallback"
	SourceManual   StreamSource = "manual"
	SourceNone     StreamSource = "none"
)

// PriceUpdate is a decoded 24h ticker tick. Symbol is always uppercase,
// regardless of which transport produced it.
type PriceUpdate struct {
	Symbol           string    `json:"symbol"`
	Price            float64   `json:"price"`
	Change24h        float64   `json:"change_24h"`
	ChangePercent24h float64   `json:"change_percent_24h"`
	Volume24h        float64   `json:"volume_24h"`
	High24h          float64   `json:"high_24h"`
	Low24h           float64   `json:"low_24h"`
	Timestamp        time.Time `json:"timestamp"`
}

// KlineUpdate is a decoded candlestick. Only closed candles are ever
// emitted, so every field here is final.
type KlineUpdate struct {
	Symbol    string    `json:"symbol"`
	OpenTime  time.Time `json:"open_time"`
	CloseTime time.Time `json:"close_time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Interval  string    `json:"interval"`
}

// ConnectionStatus is a point-in-time snapshot of the stream client.
type ConnectionStatus struct {
	Connected         bool         `json:"connected"`
	Source            StreamSource `json:"source"`
	SubscribedSymbols []string     `json:"subscribed_symbols"`
	ReconnectAttempts int          `json:"reconnect_attempts"`
}

// StreamMetrics reports session-level counters for the stream client.
type StreamMetrics struct {
	UpdateFrequency    float64 `json:"update_frequency"`
	TrackedSymbolCount int     `json:"tracked_symbol_count"`
	ReconnectAttempts  int     `json:"reconnect_attempts"`
	UptimeMs           int64   `json:"uptime_ms"`
}
