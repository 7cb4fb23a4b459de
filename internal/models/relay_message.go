package models

// RelayTickerMessage is a single event on the fallback relay feed. The
// relay only carries ticker-equivalent data; there is no kline stream on
// this transport.
type RelayTickerMessage struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change24h        float64 `json:"change_24h"`
	ChangePercent24h float64 `json:"change_percent_24h"`
	Volume24h        float64 `json:"volume_24h"`
	High24h          float64 `json:"high_24h"`
	Low24h           float64 `json:"low_24h"`
	Timestamp        int64   `json:"timestamp"` // Unix timestamp in milliseconds
}
