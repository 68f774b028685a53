// Package quote fetches the fiat exchange rate of the marketplace's
// settlement currency.
package quote

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/valyala/fastjson"
)

// Source returns the fiat price of one whole crypto unit.
type Source interface {
	Rate(ctx context.Context) (float64, error)
}

// ErrInvalidRate is returned when the upstream quote is not a finite,
// non-negative number.
var ErrInvalidRate = errors.New("invalid exchange rate")

// parserPool is a pool of fastjson.Parser instances to reduce allocations.
var parserPool = sync.Pool{
	New: func() interface{} {
		return &fastjson.Parser{}
	},
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}
