// Package price produces gold quotes from the upstream metal-price API,
// degrading to a simulated value whenever the upstream cannot answer.
package price

import (
	"math/rand/v2"
	"time"
)

const (
	// DefaultBase is the 24K reference used when the upstream is unavailable.
	DefaultBase = 4232.14
	// FallbackJitter bounds the simulated move: base ± FallbackJitter.
	FallbackJitter = 2.5
	// TroyOunceGrams converts the per-gram base into a per-ounce price.
	TroyOunceGrams = 31.1035
	// Currency is the only currency quotes are expressed in.
	Currency = "USD"
)

// Source tells where a quote's base value came from.
type Source string

const (
	SourceUpstream  Source = "upstream"
	SourceSimulated Source = "simulated"
)

// Quote is the JSON body of GET /api/gold.
// Every denomination is derived from TwentyFourK; build quotes with Derive.
type Quote struct {
	TwentyFourK float64 `json:"24K"`
	TwentyTwoK  float64 `json:"22K"`
	EighteenK   float64 `json:"18K"`
	Ounce       float64 `json:"ounce"`
	Currency    string  `json:"currency"`
	Timestamp   int64   `json:"timestamp"` // unix millis

	Source Source `json:"-"`
}

// Derive builds a quote from the 24K base price.
func Derive(base float64, at time.Time) Quote {
	return Quote{
		TwentyFourK: base,
		TwentyTwoK:  base * 22 / 24,
		EighteenK:   base * 18 / 24,
		Ounce:       base * TroyOunceGrams,
		Currency:    Currency,
		Timestamp:   at.UnixMilli(),
	}
}

// Base returns the 24K price the quote was derived from.
func (q Quote) Base() float64 {
	return q.TwentyFourK
}

// JitterFunc returns a random offset applied to simulated prices.
type JitterFunc func() float64

// UniformJitter returns offsets drawn uniformly from [-width, +width].
func UniformJitter(width float64) JitterFunc {
	return func() float64 {
		return (rand.Float64() - 0.5) * 2 * width
	}
}
