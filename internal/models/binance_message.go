package models

import "encoding/json"

// CombinedStreamMessage is the envelope Binance wraps around every frame on
// a combined stream connection. Data is left raw until the stream name
// tells us which payload shape to expect.
type CombinedStreamMessage struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

// BinanceTickerData is the 24hrTicker payload. Binance sends all decimals
// as strings.
type BinanceTickerData struct {
	EventType      string `json:"e"` // "24hrTicker"
	EventTime      int64  `json:"E"` // Unix timestamp in milliseconds
	Symbol         string `json:"s"`
	LastPrice      string `json:"c"`
	PriceChange    string `json:"p"`
	PriceChangePct string `json:"P"`
	HighPrice      string `json:"h"`
	LowPrice       string `json:"l"`
	Volume         string `json:"v"` // Base asset volume
}

// BinanceKlineData is the kline payload envelope.
type BinanceKlineData struct {
	EventType string       `json:"e"` // "kline"
	EventTime int64        `json:"E"`
	Symbol    string       `json:"s"`
	Kline     BinanceKline `json:"k"`
}

// BinanceKline is a single candle. IsFinal reports whether the candle's
// interval has closed; in-progress candles arrive with it set to false.
type BinanceKline struct {
	OpenTime  int64  `json:"t"`
	CloseTime int64  `json:"T"`
	Symbol    string `json:"s"`
	Interval  string `json:"i"`
	Open      string `json:"o"`
	Close     string `json:"c"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Volume    string `json:"v"`
	IsFinal   bool   `json:"x"`
}

// SubscribeRequest is the control message Binance accepts on an open
// websocket for live subscription changes.
type SubscribeRequest struct {
	Method string   `json:"method"` // "SUBSCRIBE" or "UNSUBSCRIBE"
	Params []string `json:"params"`
	ID     int      `json:"id"`
}
