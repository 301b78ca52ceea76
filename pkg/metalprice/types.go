package metalprice

// LatestResponse is the envelope returned by /v1/latest.
type LatestResponse struct {
	Success   *bool              `json:"success"`   // absent on some error pages, false on API errors
	Base      string             `json:"base"`      // e.g. "USD"
	Timestamp int64              `json:"timestamp"` // unix seconds of the rate snapshot
	Rates     map[string]float64 `json:"rates"`     // symbol -> rate, e.g. "XAU": 2000
	Error     *APIError          `json:"error"`     // set when success is false
}

// APIError describes a rejected request (bad key, quota exceeded, ...).
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Failed reports whether the API explicitly flagged the response as unsuccessful.
func (r *LatestResponse) Failed() bool {
	return r.Success != nil && !*r.Success
}
