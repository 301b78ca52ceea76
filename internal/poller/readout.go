package poller

import "github.com/shopspring/decimal"

var sellFactor = decimal.RequireFromString("0.9995")

// Readout holds the buy/sell figures shown under the chart.
type Readout struct {
	Buy      float64 `json:"buy"`
	Sell     float64 `json:"sell"`
	BuyText  string  `json:"buyText"`
	SellText string  `json:"sellText"`
}

// NewReadout derives the readout from a base price: buy is the base,
// sell is base * 0.9995.
func NewReadout(base float64) Readout {
	buy := decimal.NewFromFloat(base)
	sell := buy.Mul(sellFactor)

	return Readout{
		Buy:      base,
		Sell:     sell.InexactFloat64(),
		BuyText:  buy.StringFixed(2),
		SellText: sell.StringFixed(2),
	}
}
