package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/franco-grobler/axie-price-watch/pkg/transport"
)

// Endpoint is the public Axie Infinity GraphQL gateway.
const Endpoint = "https://graphql-gateway.axieinfinity.com/graphql"

// ListingURLPrefix is joined with a listing ID to link to its marketplace page.
const ListingURLPrefix = "https://marketplace.axieinfinity.com/axie/"

// maxErrorBody bounds how much of a failed response is quoted in errors.
const maxErrorBody = 512

var _ Searcher = (*Client)(nil)

// Client implements Searcher against the GraphQL gateway.
type Client struct {
	apiURL     string
	HTTPClient transport.HTTPClient
}

// NewClient creates a marketplace client. An empty apiURL uses [Endpoint].
func NewClient(client transport.HTTPClient, apiURL string) *Client {
	if apiURL == "" {
		apiURL = Endpoint
	}
	return &Client{
		apiURL:     apiURL,
		HTTPClient: client,
	}
}

// ListingURL returns the marketplace page of a listing.
func ListingURL(id string) string {
	return ListingURLPrefix + id
}

// SearchListings implements [Searcher]. Results keep the gateway's order.
func (c *Client) SearchListings(ctx context.Context, criteria Criteria) ([]Listing, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(newSearchRequest(criteria)); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, body)
	}

	listings, err := ParseListings(body)
	if err != nil {
		return nil, err
	}
	if criteria.Size > 0 && len(listings) > criteria.Size {
		listings = listings[:criteria.Size]
	}
	return listings, nil
}
