package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/valyala/fastjson"

	"github.com/franco-grobler/axie-price-watch/pkg/transport"
)

// CoinGeckoURL is the public CoinGecko v3 API base.
const CoinGeckoURL = "https://api.coingecko.com/api/v3"

var _ Source = (*CoinGecko)(nil)

// CoinGecko reads a rate from the simple/price endpoint.
// Example response:
//
//	{
//	    "ethereum": {
//	        "usd": 3012.41
//	    }
//	}
type CoinGecko struct {
	apiURL     string
	Asset      string
	VsCurrency string
	HTTPClient transport.HTTPClient
}

// NewCoinGecko creates a CoinGecko source for asset priced in vsCurrency.
func NewCoinGecko(
	client transport.HTTPClient, apiURL, asset, vsCurrency string,
) *CoinGecko {
	if apiURL == "" {
		apiURL = CoinGeckoURL
	}
	return &CoinGecko{
		apiURL:     apiURL,
		Asset:      asset,
		VsCurrency: vsCurrency,
		HTTPClient: client,
	}
}

// Rate implements [Source].
func (c *CoinGecko) Rate(ctx context.Context) (float64, error) {
	q := url.Values{}
	q.Set("ids", c.Asset)
	q.Set("vs_currencies", c.VsCurrency)
	endpoint := fmt.Sprintf("%s/simple/price?%s", c.apiURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	return c.parse(body)
}

func (c *CoinGecko) parse(body []byte) (float64, error) {
	p := parserPool.Get().(*fastjson.Parser)
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	price := v.Get(c.Asset, c.VsCurrency)
	if price == nil {
		return 0, fmt.Errorf("no %s price for %s in response", c.VsCurrency, c.Asset)
	}

	rate, err := price.Float64()
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s price: %w", c.Asset, err)
	}
	if !validRate(rate) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	return rate, nil
}
