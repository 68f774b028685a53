package transport

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
)

// WSConnection is the subset of *websocket.Conn used by readers of a stream.
type WSConnection interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Close(code websocket.StatusCode, reason string) error
}

var _ WSConnection = (*websocket.Conn)(nil)

// WSClient piggybacks on coder/websocket. Golang has no standard websocket implementation.
type WSClient interface {
	Dial(
		ctx context.Context,
		url string,
		opts *websocket.DialOptions,
	) (WSConnection, *http.Response, error)
}

var _ WSClient = (*CoderClient)(nil)

// CoderClient implements WSClient using coder/websocket.
type CoderClient struct {
	// ReadLimit caps the size of a single frame. Zero keeps the library default.
	ReadLimit int64
}

// NewCoderClient creates a new CoderClient.
func NewCoderClient() *CoderClient {
	return &CoderClient{ReadLimit: 32768}
}

// Dial implements [WSClient].
func (c *CoderClient) Dial(
	ctx context.Context, url string, opts *websocket.DialOptions,
) (WSConnection, *http.Response, error) {
	conn, resp, err := websocket.Dial(ctx, url, opts)
	if err != nil {
		return nil, resp, err
	}
	if c.ReadLimit > 0 {
		conn.SetReadLimit(c.ReadLimit)
	}
	return conn, resp, nil
}
