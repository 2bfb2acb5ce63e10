// Package swap executes swap requests against a trading backend. The
// backend in this repository is a simulator; the Submitter interface is the
// seam where a real settlement client plugs in without touching the form
// logic above it.
package swap

import (
	"context"
	"errors"
	"time"

	"github.com/swapdesk/swapdesk/internal/token"
)

// ErrSwapFailed is returned when the backend rejects a swap. The text is
// shown to the user verbatim.
var ErrSwapFailed = errors.New("Transaction failed. Please try again.")

// Request is the payload sent to the backend. Amounts stay strings: they are
// echoed back on confirmation exactly as the user saw them.
type Request struct {
	FromToken  token.Token
	ToToken    token.Token
	FromAmount string
	ToAmount   string
}

// Response is the backend's confirmation of an executed swap. It is
// transient and never persisted.
type Response struct {
	Success       bool
	TransactionID string
	FromAmount    string
	ToAmount      string
	FromCurrency  string
	ToCurrency    string
	Timestamp     time.Time
}

// Submitter executes a single swap request. Implementations must be safe
// for one in-flight call at a time; the form controller never issues a
// second submit while one is pending.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*Response, error)
}
