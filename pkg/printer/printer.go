// Package printer renders the listing report.
package printer

import (
	"github.com/shopspring/decimal"
)

// ListingPrice provides a struct for serialising a priced listing.
type ListingPrice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BreedCount int    `json:"breedCount"`
	// Fiat is nil when no valid fiat price could be established.
	Fiat   *decimal.Decimal `json:"fiatPrice,omitempty"`
	Crypto decimal.Decimal  `json:"cryptoPrice"`
	URL    string           `json:"url"`
}

// Printer provides an interface to write the report to an output stream.
type Printer interface {
	// Listing writes one displayed listing.
	Listing(l ListingPrice) error
	// Notice writes a diagnostic line that belongs to the report.
	Notice(msg string) error
}

// Units names the currencies shown next to prices.
type Units struct {
	Fiat   string
	Crypto string
}

// DefaultUnits are the marketplace's USD and ETH labels.
var DefaultUnits = Units{Fiat: "USD", Crypto: "ETH"}
