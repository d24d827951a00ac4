package stockfolio

// Historical is the stored daily adjusted-close series for one security.
// Entries are ascending by date with gaps on non-trading days.
type Historical struct {
	Symbol      string  `json:"symbol"`
	LastUpdated Date    `json:"lastUpdated"`
	Currency    string  `json:"currency"`
	Entries     []Point `json:"entries"`
}

// Stale reports whether the series needs a refresh: it is stale unless it was
// updated today.
func (h *Historical) Stale(today Date) bool {
	return h.LastUpdated != today
}

// ExchangeRate is the stored daily rate series converting From into To.
type ExchangeRate struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	LastUpdated Date    `json:"lastUpdated"`
	Entries     []Point `json:"entries"`
}

// Stale reports whether the series needs a refresh.
func (r *ExchangeRate) Stale(today Date) bool {
	return r.LastUpdated != today
}
