package metalprice

// Symbol is a currency or metal code accepted by the latest-rates endpoint.
type Symbol string

const (
	USD Symbol = "USD"
	EUR Symbol = "EUR"
	GBP Symbol = "GBP"
	AED Symbol = "AED"

	XAU Symbol = "XAU" // gold
	XAG Symbol = "XAG" // silver
	XPT Symbol = "XPT" // platinum
	XPD Symbol = "XPD" // palladium
)

const latestPath = "/v1/latest"

var validSymbols = map[Symbol]struct{}{
	USD: {}, EUR: {}, GBP: {}, AED: {},
	XAU: {}, XAG: {}, XPT: {}, XPD: {},
}

// IsValid reports whether the symbol is one the client knows how to request.
func (s Symbol) IsValid() bool {
	_, ok := validSymbols[s]
	return ok
}
