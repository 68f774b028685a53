package marketplace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"
)

// ErrNoResults is returned when the response lacks data.axies.results.
var ErrNoResults = errors.New("response has no data.axies.results")

// parserPool is a pool of fastjson.Parser instances to reduce allocations.
// Each Parser is reusable and thread-safe when used from a single goroutine.
var parserPool = sync.Pool{
	New: func() interface{} {
		return &fastjson.Parser{}
	},
}

// ParseListings decodes a GetAxies response.
// Example:
//
//	{
//	    "data": {
//	        "axies": {
//	            "results": [
//	                {
//	                    "id": "11720925",
//	                    "name": "Axie #11720925",
//	                    "breedCount": 4,
//	                    "order": {
//	                        "currentPriceUsd": "42.17",
//	                        "currentPrice": "14000000000000000"
//	                    }
//	                }
//	            ]
//	        }
//	    }
//	}
//
// Prices may be JSON strings or numbers and order may be null.
func ParseListings(data []byte) ([]Listing, error) {
	p := parserPool.Get().(*fastjson.Parser)
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if errs := v.GetArray("errors"); len(errs) > 0 {
		msg := string(errs[0].GetStringBytes("message"))
		if msg == "" {
			msg = errs[0].String()
		}
		return nil, fmt.Errorf("graphql error: %s", msg)
	}

	results := v.Get("data", "axies", "results")
	if results == nil || results.Type() != fastjson.TypeArray {
		return nil, ErrNoResults
	}

	items, _ := results.Array()
	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, parseListing(item))
	}

	return listings, nil
}

func parseListing(v *fastjson.Value) Listing {
	l := Listing{
		ID:         scalarString(v.Get("id")),
		Name:       string(v.GetStringBytes("name")),
		BreedCount: v.GetInt("breedCount"),
	}

	order := v.Get("order")
	if isNull(order) {
		return l
	}

	l.Order = &Order{
		CurrentPriceUSD: parseFiat(order.Get("currentPriceUsd")),
		CurrentPriceWei: parseWei(order.Get("currentPrice")),
	}
	return l
}

func isNull(v *fastjson.Value) bool {
	return v == nil || v.Type() == fastjson.TypeNull
}

// scalarString returns strings verbatim and other scalars in JSON form.
func scalarString(v *fastjson.Value) string {
	if isNull(v) {
		return ""
	}
	if v.Type() == fastjson.TypeString {
		return string(v.GetStringBytes())
	}
	return v.String()
}

// parseFiat returns nil for absent or empty values and NaN for anything
// present that is not a number.
func parseFiat(v *fastjson.Value) *float64 {
	if isNull(v) {
		return nil
	}

	var f float64
	switch v.Type() {
	case fastjson.TypeNumber:
		n, err := v.Float64()
		if err != nil {
			n = math.NaN()
		}
		f = n
	case fastjson.TypeString:
		s := strings.TrimSpace(string(v.GetStringBytes()))
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			n = math.NaN()
		}
		f = n
	default:
		f = math.NaN()
	}
	return &f
}

// parseWei keeps full integer precision. Malformed or negative amounts are
// dropped.
func parseWei(v *fastjson.Value) *decimal.Decimal {
	if isNull(v) {
		return nil
	}

	var raw string
	switch v.Type() {
	case fastjson.TypeNumber:
		raw = v.String()
	case fastjson.TypeString:
		raw = strings.TrimSpace(string(v.GetStringBytes()))
	default:
		return nil
	}
	if raw == "" {
		return nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
