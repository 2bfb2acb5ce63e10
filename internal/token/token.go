package token

import "time"

// PriceRecord is a single raw entry from the price feed. The feed is
// untrusted: the same currency can appear multiple times with different
// timestamps, and prices can be zero or negative placeholders.
type PriceRecord struct {
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
}

// Token is a tradeable currency with its latest known valid USD price.
// Tokens are immutable once built; a refetch produces a whole new set.
type Token struct {
	Currency string
	Price    float64
	Icon     string
}

// Zero reports whether the token is the empty value (nothing selected).
func (t Token) Zero() bool {
	return t.Currency == ""
}
