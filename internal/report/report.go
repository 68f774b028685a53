// Package report runs one listing report: it fetches the exchange rate, then
// the listings, and prints every listing that can be priced.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/franco-grobler/axie-price-watch/internal/pricing"
	"github.com/franco-grobler/axie-price-watch/pkg/marketplace"
	"github.com/franco-grobler/axie-price-watch/pkg/printer"
	"github.com/franco-grobler/axie-price-watch/pkg/quote"
)

// Report lines that are not tied to a single listing.
const (
	MsgNoRate        = "Could not fetch ETH price. Exiting."
	MsgNoResults     = "No Axies found matching the query criteria."
	MsgNoneDisplayed = "No Axies found matching the breed count and price criteria."
)

// Summary describes the outcome of a run.
type Summary struct {
	Rate      float64
	Fetched   int
	Displayed int
	Skipped   int
}

// Runner wires the rate source, the marketplace and the printer together.
type Runner struct {
	Rates    quote.Source
	Listings marketplace.Searcher
	Printer  printer.Printer
	Logger   *slog.Logger
	Criteria marketplace.Criteria
}

// Run executes the report. Fetch failures are logged and end the run early;
// they are never returned.
func (r *Runner) Run(ctx context.Context) Summary {
	var sum Summary

	sum.Rate = r.exchangeRate(ctx)
	if sum.Rate == 0 {
		r.notice(MsgNoRate)
		return sum
	}

	listings, err := r.Listings.SearchListings(ctx, r.Criteria)
	if err != nil {
		r.Logger.Error("Error fetching Axies", "error", err)
		return sum
	}
	sum.Fetched = len(listings)
	r.Logger.Debug("fetched listings", "count", sum.Fetched, "rate", sum.Rate)

	if len(listings) == 0 {
		r.notice(MsgNoResults)
		return sum
	}

	for _, l := range listings {
		if r.display(l, sum.Rate) {
			sum.Displayed++
		} else {
			sum.Skipped++
		}
	}

	if sum.Displayed == 0 {
		r.notice(MsgNoneDisplayed)
	}

	return sum
}

// exchangeRate returns 0 when the rate is unavailable.
func (r *Runner) exchangeRate(ctx context.Context) float64 {
	rate, err := r.Rates.Rate(ctx)
	if err != nil {
		r.Logger.Error("Error fetching ETH price", "error", err)
		return 0
	}
	return rate
}

func (r *Runner) display(l marketplace.Listing, rate float64) bool {
	q := pricing.Reconcile(l, rate)

	switch q.Status {
	case pricing.NotListed:
		r.notice(fmt.Sprintf("Axie ID %s is not listed for sale.", l.ID))
		return false
	case pricing.NoCryptoPrice:
		r.notice(fmt.Sprintf("Axie ID %s does not have a valid ETH price.", l.ID))
		return false
	}

	out := printer.ListingPrice{
		ID:         l.ID,
		Name:       l.Name,
		BreedCount: l.BreedCount,
		Crypto:     q.Crypto,
		URL:        marketplace.ListingURL(l.ID),
	}
	if q.Derived {
		r.Logger.Debug("derived fiat price", "id", l.ID, "rate", rate, "valid", q.HasFiat)
	}
	if q.HasFiat {
		fiat := q.Fiat
		out.Fiat = &fiat
	} else {
		r.notice(fmt.Sprintf(
			"Axie ID %s has an invalid USD price. Displaying ETH price only.", l.ID))
	}

	if err := r.Printer.Listing(out); err != nil {
		r.Logger.Error("could not write listing", "id", l.ID, "error", err)
	}
	return true
}

func (r *Runner) notice(msg string) {
	if err := r.Printer.Notice(msg); err != nil {
		r.Logger.Error("could not write notice", "error", err)
	}
}
