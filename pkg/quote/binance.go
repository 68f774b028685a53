package quote

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/valyala/fastjson"

	"github.com/franco-grobler/axie-price-watch/pkg/transport"
)

// BinanceStreamURL is the Binance WebSocket Stream base URL
const BinanceStreamURL = "wss://stream.binance.com:9443/ws"

var _ Source = (*BinanceTicker)(nil)

// BinanceTicker takes the rate from the first frame of an individual
// symbol mini ticker stream.
// Example:
//
//	{
//	    "e": "24hrMiniTicker",  // Event type
//	    "E": 1672515782136,     // Event time
//	    "s": "ETHUSDT",         // Symbol
//	    "c": "3012.41000000",   // Close price
//	    "o": "2990.00000000",   // Open price
//	    "h": "3050.00000000",   // High price
//	    "l": "2970.00000000",   // Low price
//	    "v": "10000",           // Total traded base asset volume
//	    "q": "18"               // Total traded quote asset volume
//	}
type BinanceTicker struct {
	wsURL    string
	Symbol   string
	WSClient transport.WSClient
}

// NewBinanceTicker creates a ticker source for symbol, e.g. "ETHUSDT".
func NewBinanceTicker(client transport.WSClient, wsURL, symbol string) *BinanceTicker {
	if wsURL == "" {
		wsURL = BinanceStreamURL
	}
	return &BinanceTicker{
		wsURL:    strings.TrimSuffix(wsURL, "/"),
		Symbol:   symbol,
		WSClient: client,
	}
}

// Rate implements [Source].
func (b *BinanceTicker) Rate(ctx context.Context) (float64, error) {
	// Binance symbols in streams must be lowercase
	url := fmt.Sprintf("%s/%s@miniTicker", b.wsURL, strings.ToLower(b.Symbol))

	conn, _, err := b.WSClient.Dial(ctx, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	_, data, err := conn.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read ticker: %w", err)
	}

	return parseMiniTicker(data)
}

func parseMiniTicker(data []byte) (float64, error) {
	p := parserPool.Get().(*fastjson.Parser)
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ticker: %w", err)
	}

	// Combined stream format: {"stream":"ethusdt@miniTicker","data":{...}}
	if v.Exists("stream") && v.Exists("data") {
		v = v.Get("data")
	}

	closePrice := v.GetStringBytes("c")
	if closePrice == nil {
		return 0, fmt.Errorf("ticker has no close price")
	}

	rate, err := strconv.ParseFloat(string(closePrice), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse close price: %w", err)
	}
	if !validRate(rate) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	return rate, nil
}
