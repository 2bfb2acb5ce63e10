package pricefeed

import "fmt"

// FetchError indicates the price feed was unreachable or answered with a
// non-success status. The UI surfaces it as a full-form error with a manual
// retry action.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("price feed %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("price feed %s unreachable: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError indicates the feed answered successfully but the payload was
// not a well-formed list of price records. Treated like a fetch failure by
// the UI.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("price feed %s returned malformed payload: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
