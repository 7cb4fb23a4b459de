package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrimaryFrame(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		wantPrice bool
		wantKline bool
	}{
		{
			name: "malformed JSON is dropped",
			raw:  `{"stream":"btcusdt@ticker","data":{`,
		},
		{
			name: "unknown sub-stream is dropped",
			raw:  `{"stream":"btcusdt@depth","data":{}}`,
		},
		{
			name:      "valid ticker",
			raw:       `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","E":1700000000123,"s":"btcusdt","c":"43125.50","p":"120.50","P":"0.28","h":"44100.00","l":"42900.00","v":"18000.40"}}`,
			wantPrice: true,
		},
		{
			name: "ticker with unparseable price is dropped",
			raw:  `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","E":1700000000123,"s":"BTCUSDT","c":"not_a_number","p":"120.50","P":"0.28","h":"44100.00","l":"42900.00","v":"18000.40"}}`,
		},
		{
			name: "ticker without symbol is dropped",
			raw:  `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","E":1700000000123,"c":"43125.50","p":"120.50","P":"0.28","h":"44100.00","l":"42900.00","v":"18000.40"}}`,
		},
		{
			name: "in-progress kline is dropped silently",
			raw:  `{"stream":"btcusdt@kline_1m","data":{"e":"kline","s":"BTCUSDT","k":{"t":1700000000000,"T":1700000059999,"s":"BTCUSDT","i":"1m","o":"43000.0","c":"43050.5","h":"43060.0","l":"42990.0","v":"125.7","x":false}}}`,
		},
		{
			name:      "closed kline is decoded",
			raw:       `{"stream":"btcusdt@kline_1m","data":{"e":"kline","s":"btcusdt","k":{"t":1700000000000,"T":1700000059999,"s":"btcusdt","i":"1m","o":"43000.0","c":"43050.5","h":"43060.0","l":"42990.0","v":"125.7","x":true}}}`,
			wantKline: true,
		},
		{
			name: "kline with unparseable volume is dropped",
			raw:  `{"stream":"btcusdt@kline_1m","data":{"e":"kline","s":"BTCUSDT","k":{"t":1700000000000,"T":1700000059999,"s":"BTCUSDT","i":"1m","o":"43000.0","c":"43050.5","h":"43060.0","l":"42990.0","v":"??","x":true}}}`,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			price, kline := decodePrimaryFrame([]byte(tt.raw))
			assert.Equal(t, tt.wantPrice, price != nil, "price presence")
			assert.Equal(t, tt.wantKline, kline != nil, "kline presence")
		})
	}
}

func TestDecodePrimaryFrameTickerFields(t *testing.T) {
	raw := `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","E":1700000000123,"s":"btcusdt","c":"43125.50","p":"120.50","P":"0.28","h":"44100.00","l":"42900.00","v":"18000.40"}}`
	price, kline := decodePrimaryFrame([]byte(raw))
	require.NotNil(t, price)
	require.Nil(t, kline)

	// Provider casing never leaks: lowercase wire symbols come out uppercase.
	assert.Equal(t, "BTCUSDT", price.Symbol)
	assert.Equal(t, 43125.50, price.Price)
	assert.Equal(t, 120.50, price.Change24h)
	assert.Equal(t, 0.28, price.ChangePercent24h)
	assert.Equal(t, 44100.00, price.High24h)
	assert.Equal(t, 42900.00, price.Low24h)
	assert.Equal(t, 18000.40, price.Volume24h)
	assert.Equal(t, int64(1700000000123), price.Timestamp.UnixMilli())
}

func TestDecodePrimaryFrameKlineFields(t *testing.T) {
	raw := `{"stream":"btcusdt@kline_1m","data":{"e":"kline","s":"btcusdt","k":{"t":1700000000000,"T":1700000059999,"s":"btcusdt","i":"1m","o":"43000.0","c":"43050.5","h":"43060.0","l":"42990.0","v":"125.7","x":true}}}`
	_, kline := decodePrimaryFrame([]byte(raw))
	require.NotNil(t, kline)

	assert.Equal(t, "BTCUSDT", kline.Symbol)
	assert.Equal(t, "1m", kline.Interval)
	assert.Equal(t, time.UnixMilli(1700000000000), kline.OpenTime)
	assert.Equal(t, time.UnixMilli(1700000059999), kline.CloseTime)
	assert.Equal(t, 43000.0, kline.Open)
	assert.Equal(t, 43050.5, kline.Close)
	assert.Equal(t, 43060.0, kline.High)
	assert.Equal(t, 42990.0, kline.Low)
	assert.Equal(t, 125.7, kline.Volume)
}

func TestDecodeFallbackFrame(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "valid relay ticker",
			raw:  `{"symbol":"ethusdt","price":2301.25,"change_24h":-14.1,"change_percent_24h":-0.61,"volume_24h":920000,"high_24h":2350,"low_24h":2280,"timestamp":1700000000123}`,
			want: true,
		},
		{
			name: "malformed JSON is dropped",
			raw:  `data garbage`,
		},
		{
			name: "missing symbol is dropped",
			raw:  `{"price":2301.25,"timestamp":1700000000123}`,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			price := decodeFallbackFrame([]byte(tt.raw))
			assert.Equal(t, tt.want, price != nil)
			if price != nil {
				assert.Equal(t, "ETHUSDT", price.Symbol)
				assert.Equal(t, 2301.25, price.Price)
				assert.Equal(t, int64(1700000000123), price.Timestamp.UnixMilli())
			}
		})
	}
}
