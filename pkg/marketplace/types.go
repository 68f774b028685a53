// Package marketplace queries the Axie Infinity GraphQL gateway for listings.
package marketplace

import (
	"context"

	"github.com/shopspring/decimal"
)

// AuctionSale selects listings that are currently for sale.
const AuctionSale = "Sale"

// Criteria filters a listing search. It maps onto the GetAxies variables:
//
//	{
//	    "auctionType": "Sale",
//	    "criteria": {"breedCount": [4, 5, 6, 7]},
//	    "from": 0,
//	    "size": 10
//	}
type Criteria struct {
	AuctionType string
	BreedCounts []int
	From        int
	Size        int
}

// DefaultCriteria returns the first page of ten for-sale listings with a
// breed count between 4 and 7.
func DefaultCriteria() Criteria {
	return Criteria{
		AuctionType: AuctionSale,
		BreedCounts: []int{4, 5, 6, 7},
		From:        0,
		Size:        10,
	}
}

// Listing is a read-only projection of one search result.
type Listing struct {
	ID         string
	Name       string
	BreedCount int
	// Order is nil when the listing has no open order.
	Order *Order
}

// Order carries the optional prices of an open order.
type Order struct {
	// CurrentPriceUSD is nil when absent and NaN when present but not a number.
	CurrentPriceUSD *float64
	// CurrentPriceWei is nil when absent, malformed or negative.
	CurrentPriceWei *decimal.Decimal
}

// Searcher defines the listing lookup the report depends on.
type Searcher interface {
	SearchListings(ctx context.Context, criteria Criteria) ([]Listing, error)
}
