package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MockHTTPClient implements transport.HTTPClient for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	mockHTTP := &MockHTTPClient{}
	client := NewClient(mockHTTP, "")

	if client.apiURL != Endpoint {
		t.Errorf("apiURL = %s, want %s", client.apiURL, Endpoint)
	}
	if client.HTTPClient != mockHTTP {
		t.Error("HTTPClient not set correctly")
	}
}

func TestListingURL(t *testing.T) {
	t.Parallel()

	if got := ListingURL("11720925"); got != "https://marketplace.axieinfinity.com/axie/11720925" {
		t.Errorf("ListingURL() = %s", got)
	}
}

func TestDefaultCriteria(t *testing.T) {
	t.Parallel()

	c := DefaultCriteria()
	if c.AuctionType != "Sale" || c.From != 0 || c.Size != 10 {
		t.Errorf("DefaultCriteria() = %+v", c)
	}
	want := []int{4, 5, 6, 7}
	if len(c.BreedCounts) != len(want) {
		t.Fatalf("BreedCounts = %v, want %v", c.BreedCounts, want)
	}
	for i := range want {
		if c.BreedCounts[i] != want[i] {
			t.Errorf("BreedCounts = %v, want %v", c.BreedCounts, want)
		}
	}
}

func TestClient_SearchListings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mockResp   *http.Response
		mockErr    error
		wantCount  int
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "successful search",
			mockResp: &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(listingsPayload)),
			},
			wantCount: 5,
		},
		{
			name: "empty results",
			mockResp: &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"data":{"axies":{"results":[]}}}`)),
			},
			wantCount: 0,
		},
		{
			name:       "http request error",
			mockErr:    errors.New("network error"),
			wantErr:    true,
			wantErrMsg: "network error",
		},
		{
			name: "bad gateway",
			mockResp: &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(bytes.NewBufferString(`upstream unavailable`)),
			},
			wantErr:    true,
			wantErrMsg: "unexpected status code: 502: upstream unavailable",
		},
		{
			name: "graphql error",
			mockResp: &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"errors":[{"message":"rate limited"}]}`)),
			},
			wantErr:    true,
			wantErrMsg: "graphql error: rate limited",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotMethod, gotContentType string
			mockHTTP := &MockHTTPClient{
				DoFunc: func(req *http.Request) (*http.Response, error) {
					gotMethod = req.Method
					gotContentType = req.Header.Get("Content-Type")
					return tt.mockResp, tt.mockErr
				},
			}

			client := NewClient(mockHTTP, "")
			got, err := client.SearchListings(context.Background(), DefaultCriteria())

			if gotMethod != http.MethodPost {
				t.Errorf("method = %s, want POST", gotMethod)
			}
			if gotContentType != "application/json" {
				t.Errorf("Content-Type = %s, want application/json", gotContentType)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("SearchListings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Errorf("SearchListings() error = %v, want error containing %s", err, tt.wantErrMsg)
				}
				return
			}
			if len(got) != tt.wantCount {
				t.Errorf("got %d listings, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestClient_SearchListings_RequestBody(t *testing.T) {
	t.Parallel()

	type request struct {
		Query     string `json:"query"`
		Variables struct {
			AuctionType string `json:"auctionType"`
			Criteria    struct {
				BreedCount []int `json:"breedCount"`
			} `json:"criteria"`
			From int `json:"from"`
			Size int `json:"size"`
		} `json:"variables"`
	}

	bodyCh := make(chan request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bodyCh <- req
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(listingsPayload)
	}))
	defer server.Close()

	client := NewClient(http.DefaultClient, server.URL)
	criteria := Criteria{AuctionType: AuctionSale, BreedCounts: []int{4, 7}, From: 20, Size: 5}

	listings, err := client.SearchListings(context.Background(), criteria)
	if err != nil {
		t.Fatalf("SearchListings() error = %v", err)
	}
	if len(listings) != 5 {
		t.Errorf("got %d listings, want 5", len(listings))
	}

	got := <-bodyCh
	if !strings.Contains(got.Query, "query GetAxies") {
		t.Errorf("query = %s", got.Query)
	}
	if got.Variables.AuctionType != "Sale" {
		t.Errorf("auctionType = %s, want Sale", got.Variables.AuctionType)
	}
	if len(got.Variables.Criteria.BreedCount) != 2 ||
		got.Variables.Criteria.BreedCount[0] != 4 || got.Variables.Criteria.BreedCount[1] != 7 {
		t.Errorf("breedCount = %v, want [4 7]", got.Variables.Criteria.BreedCount)
	}
	if got.Variables.From != 20 || got.Variables.Size != 5 {
		t.Errorf("from/size = %d/%d, want 20/5", got.Variables.From, got.Variables.Size)
	}
}

func TestClient_SearchListings_TruncatesToSize(t *testing.T) {
	t.Parallel()

	mockHTTP := &MockHTTPClient{
		DoFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(listingsPayload)),
			}, nil
		},
	}

	criteria := DefaultCriteria()
	criteria.Size = 2

	got, err := NewClient(mockHTTP, "").SearchListings(context.Background(), criteria)
	if err != nil {
		t.Fatalf("SearchListings() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "11720925" || got[1].ID != "11720926" {
		t.Errorf("got %+v, want the first two listings", got)
	}
}
