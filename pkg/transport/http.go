// Package transport holds the network clients shared by the quote and
// marketplace packages.
package transport

import (
	"net/http"
	"time"
)

// HTTPClient Define the interface for the HTTP client's behaviour
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ HTTPClient = (*http.Client)(nil)

// NewHTTPClient creates a basic new HTTPClient. A zero timeout means the
// client waits as long as the request context allows.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
