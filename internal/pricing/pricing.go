// Package pricing reconciles the fiat and on-chain prices of a listing.
package pricing

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/franco-grobler/axie-price-watch/pkg/marketplace"
)

// WeiDecimals is the number of decimal places between wei and one ether.
const WeiDecimals = 18

// Status is the outcome of reconciling a single listing.
type Status int

// 'Enum' for Status
const (
	// NotListed means the listing has no order.
	NotListed Status = iota
	// NoCryptoPrice means the order has no usable wei price.
	NoCryptoPrice
	// Priced means the listing can be displayed.
	Priced
)

func (s Status) String() string {
	switch s {
	case NotListed:
		return "not_listed"
	case NoCryptoPrice:
		return "no_crypto_price"
	case Priced:
		return "priced"
	default:
		return "unknown"
	}
}

// Quote is the reconciled price of a listing. Crypto and Fiat are only
// meaningful when Status is Priced, and Fiat only when HasFiat is set.
type Quote struct {
	Status  Status
	Crypto  decimal.Decimal
	Fiat    decimal.Decimal
	HasFiat bool
	// Derived is set when Fiat was computed from Crypto and the rate.
	Derived bool
}

// WeiToCrypto scales a wei amount to whole units.
func WeiToCrypto(wei decimal.Decimal) decimal.Decimal {
	return wei.Shift(-WeiDecimals)
}

// Reconcile prices a listing against rate, the fiat value of one whole unit.
//
// A zero or missing wei price leaves the listing unpriced. A fiat price that
// is missing, zero or not a number is derived from the wei price. A fiat
// price that is still not a finite positive number is dropped, leaving only
// the crypto price.
func Reconcile(l marketplace.Listing, rate float64) Quote {
	if l.Order == nil {
		return Quote{Status: NotListed}
	}

	if l.Order.CurrentPriceWei == nil {
		return Quote{Status: NoCryptoPrice}
	}
	crypto := WeiToCrypto(*l.Order.CurrentPriceWei)
	if !crypto.IsPositive() {
		return Quote{Status: NoCryptoPrice}
	}

	q := Quote{Status: Priced, Crypto: crypto}

	given := l.Order.CurrentPriceUSD
	if given == nil || !finite(*given) || *given == 0 {
		q.Derived = true
		if finite(rate) {
			q.Fiat = crypto.Mul(decimal.NewFromFloat(rate))
			q.HasFiat = q.Fiat.IsPositive()
		}
		return q
	}

	if *given > 0 {
		q.Fiat = exactDecimal(*given).Round(2)
		q.HasFiat = true
	}
	return q
}

// exactDecimal converts f from its binary value rather than its shortest
// decimal form, so 1.005 (stored as 1.00499...) rounds to 1.00.
func exactDecimal(f float64) decimal.Decimal {
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// mant * 2^-k == mant * 5^k * 10^-k
	k := int64(-exp)
	mant.Mul(mant, new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil))
	return decimal.NewFromBigInt(mant, int32(-k))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
