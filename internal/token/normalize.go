package token

import "sort"

// Normalize turns a raw price feed payload into the token list the rest of
// the application works with: one entry per currency, carrying the price of
// the chronologically latest record for that currency.
//
// Records with a non-positive price are dropped after deduplication; the
// feed uses zero as a placeholder for tokens it cannot price. When two
// records for the same currency carry the same timestamp, the last one seen
// wins (feed ordering is not stable, so the tie-break is arbitrary either way).
// The result is sorted ascending by currency symbol, byte-wise.
func Normalize(records []PriceRecord, iconBaseURL string) []Token {
	latest := make(map[string]PriceRecord, len(records))
	for _, rec := range records {
		existing, ok := latest[rec.Currency]
		if !ok || !rec.Date.Before(existing.Date) {
			latest[rec.Currency] = rec
		}
	}

	tokens := make([]Token, 0, len(latest))
	for currency, rec := range latest {
		if rec.Price <= 0 {
			continue
		}
		tokens = append(tokens, Token{
			Currency: currency,
			Price:    rec.Price,
			Icon:     ResolveIcon(iconBaseURL, currency),
		})
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Currency < tokens[j].Currency
	})

	return tokens
}
