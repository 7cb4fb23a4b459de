package stream

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"price-stream-backend/internal/models"
)

// Frame decoding is a pure translation step: a raw transport frame either
// becomes exactly one typed update or is dropped. Malformed frames are
// expected noise on a live feed, so they are logged and discarded without
// touching connection or throttle state.

// decodePrimaryFrame parses a combined-stream frame from the exchange
// websocket. At most one of the returned updates is non-nil; both nil means
// the frame was skipped (unknown sub-stream, in-progress candle, or bad
// payload).
func decodePrimaryFrame(raw []byte) (*models.PriceUpdate, *models.KlineUpdate) {
	var env models.CombinedStreamMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Skipping undecodable primary frame: %v", err)
		return nil, nil
	}

	switch {
	case strings.HasSuffix(env.Stream, "@ticker"):
		return decodeTicker(env.Data), nil
	case strings.Contains(env.Stream, "@kline"):
		return nil, decodeKline(env.Data)
	default:
		// Combined streams can carry sub-streams we never asked for after
		// a live subscribe; ignore anything we do not recognize.
		return nil, nil
	}
}

func decodeTicker(data json.RawMessage) *models.PriceUpdate {
	var t models.BinanceTickerData
	if err := json.Unmarshal(data, &t); err != nil {
		log.Printf("Skipping undecodable ticker payload: %v", err)
		return nil
	}
	if t.Symbol == "" {
		log.Printf("Skipping ticker payload without a symbol")
		return nil
	}

	fields := map[string]string{
		"price":   t.LastPrice,
		"change":  t.PriceChange,
		"percent": t.PriceChangePct,
		"volume":  t.Volume,
		"high":    t.HighPrice,
		"low":     t.LowPrice,
	}
	parsed := make(map[string]float64, len(fields))
	for name, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Printf("Skipping ticker for %s: bad %s value %q", t.Symbol, name, s)
			return nil
		}
		parsed[name] = v
	}

	return &models.PriceUpdate{
		Symbol:           strings.ToUpper(t.Symbol),
		Price:            parsed["price"],
		Change24h:        parsed["change"],
		ChangePercent24h: parsed["percent"],
		Volume24h:        parsed["volume"],
		High24h:          parsed["high"],
		Low24h:           parsed["low"],
		Timestamp:        time.UnixMilli(t.EventTime),
	}
}

func decodeKline(data json.RawMessage) *models.KlineUpdate {
	var k models.BinanceKlineData
	if err := json.Unmarshal(data, &k); err != nil {
		log.Printf("Skipping undecodable kline payload: %v", err)
		return nil
	}
	if k.Symbol == "" {
		log.Printf("Skipping kline payload without a symbol")
		return nil
	}
	// In-progress candles can still change; consumers only ever see closed
	// ones. Dropping here is policy, not an error.
	if !k.Kline.IsFinal {
		return nil
	}

	fields := map[string]string{
		"open":   k.Kline.Open,
		"high":   k.Kline.High,
		"low":    k.Kline.Low,
		"close":  k.Kline.Close,
		"volume": k.Kline.Volume,
	}
	parsed := make(map[string]float64, len(fields))
	for name, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Printf("Skipping kline for %s: bad %s value %q", k.Symbol, name, s)
			return nil
		}
		parsed[name] = v
	}

	return &models.KlineUpdate{
		Symbol:    strings.ToUpper(k.Symbol),
		OpenTime:  time.UnixMilli(k.Kline.OpenTime),
		CloseTime: time.UnixMilli(k.Kline.CloseTime),
		Open:      parsed["open"],
		High:      parsed["high"],
		Low:       parsed["low"],
		Close:     parsed["close"],
		Volume:    parsed["volume"],
		Interval:  k.Kline.Interval,
	}
}

// decodeFallbackFrame parses a relay event. The relay never carries klines.
func decodeFallbackFrame(raw []byte) *models.PriceUpdate {
	var m models.RelayTickerMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Printf("Skipping undecodable relay frame: %v", err)
		return nil
	}
	if m.Symbol == "" {
		log.Printf("Skipping relay frame without a symbol")
		return nil
	}

	return &models.PriceUpdate{
		Symbol:           strings.ToUpper(m.Symbol),
		Price:            m.Price,
		Change24h:        m.Change24h,
		ChangePercent24h: m.ChangePercent24h,
		Volume24h:        m.Volume24h,
		High24h:          m.High24h,
		Low24h:           m.Low24h,
		Timestamp:        time.UnixMilli(m.Timestamp),
	}
}
