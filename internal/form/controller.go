// Package form owns the swap form state machine: token selections, amount
// entry, derived values, validation, and the submission lifecycle. It is
// UI-free; screens call into it and render whatever it exposes.
package form

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/exchange"
	"github.com/swapdesk/swapdesk/internal/swap"
	"github.com/swapdesk/swapdesk/internal/token"
)

// Status is the submission state of the form. Success and failure both
// settle back to idle; the outcome is carried by the Notice instead.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
)

// Validation messages shown inline next to the offending field.
const (
	MsgSelectToken    = "Please select a token"
	MsgEnterAmount    = "Please enter an amount"
	MsgInvalidAmount  = "Please enter a valid amount"
	MsgDifferentToken = "Please select a different token"
)

// FieldErrors holds per-field validation errors; empty string means valid.
type FieldErrors struct {
	FromToken  string
	ToToken    string
	FromAmount string
}

// Empty reports whether no field has an error.
func (e FieldErrors) Empty() bool {
	return e == FieldErrors{}
}

// NoticeKind distinguishes the transient result banners.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a dismissible banner describing the outcome of the last
// submission.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Controller is the swap form state machine. It is not safe for concurrent
// use; the TUI drives it from a single update loop, which is the only
// concurrency model the form needs.
type Controller struct {
	logger *zap.Logger

	fromToken  token.Token
	toToken    token.Token
	fromAmount string
	toAmount   string
	errors     FieldErrors
	status     Status
	notice     *Notice
}

// New creates an empty form controller.
func New(logger *zap.Logger) *Controller {
	return &Controller{logger: logger.Named("swap_form")}
}

// SetFromToken selects the source token, clears its field error, and
// recomputes the derived amount.
func (c *Controller) SetFromToken(tok token.Token) {
	c.fromToken = tok
	c.errors.FromToken = ""
	c.recompute()
}

// SetToToken selects the destination token, clears its field error, and
// recomputes the derived amount.
func (c *Controller) SetToToken(tok token.Token) {
	c.toToken = tok
	c.errors.ToToken = ""
	c.recompute()
}

// SetFromAmount records the user-entered amount, clears the amount error,
// and recomputes the derived amount.
func (c *Controller) SetFromAmount(amount string) {
	c.fromAmount = amount
	c.errors.FromAmount = ""
	c.recompute()
}

// Flip exchanges source and destination. The entered amount becomes the old
// derived amount and the new derived amount is computed fresh from the
// flipped pair rather than reusing the old entry, so repeated flips do not
// accumulate rounding drift. All field errors are cleared.
func (c *Controller) Flip() {
	c.fromToken, c.toToken = c.toToken, c.fromToken
	c.fromAmount = c.toAmount
	c.errors = FieldErrors{}
	c.recompute()
}

// Validate collects every violation before reporting; rules are not
// short-circuited so the user sees all problems at once.
func (c *Controller) Validate() FieldErrors {
	var errs FieldErrors

	if c.fromToken.Zero() {
		errs.FromToken = MsgSelectToken
	}
	if c.toToken.Zero() {
		errs.ToToken = MsgSelectToken
	} else if !c.fromToken.Zero() && c.fromToken.Currency == c.toToken.Currency {
		// The picker already excludes the opposite selection; this is the
		// server-side-equivalent backstop.
		errs.ToToken = MsgDifferentToken
	}

	if c.fromAmount == "" {
		errs.FromAmount = MsgEnterAmount
	} else if amt, ok := parseAmount(c.fromAmount); !ok || amt <= 0 {
		errs.FromAmount = MsgInvalidAmount
	}

	return errs
}

// BeginSubmit validates the form and, when clean, transitions to pending
// and returns the request to execute. On any violation the field errors are
// set, no request is produced, and the form stays idle. A submit while one
// is already pending is refused.
func (c *Controller) BeginSubmit() (swap.Request, bool) {
	if c.status == StatusPending {
		return swap.Request{}, false
	}

	if errs := c.Validate(); !errs.Empty() {
		c.errors = errs
		return swap.Request{}, false
	}

	c.status = StatusPending
	c.notice = nil

	req := swap.Request{
		FromToken:  c.fromToken,
		ToToken:    c.toToken,
		FromAmount: c.fromAmount,
		ToAmount:   c.toAmount,
	}

	c.logger.Info("swap submitted",
		zap.String("from", req.FromToken.Currency),
		zap.String("to", req.ToToken.Currency),
		zap.String("from_amount", req.FromAmount))

	return req, true
}

// CompleteSubmit settles a pending submission. Success clears the whole
// form; failure preserves every field for resubmission. Either way the form
// returns to idle with a notice describing the outcome.
func (c *Controller) CompleteSubmit(resp *swap.Response, err error) {
	c.status = StatusIdle

	if err != nil {
		c.notice = &Notice{
			Kind:    NoticeError,
			Title:   "Swap Failed",
			Message: err.Error(),
		}
		c.logger.Warn("swap failed", zap.Error(err))
		return
	}

	c.notice = &Notice{
		Kind:  NoticeSuccess,
		Title: "Swap Successful!",
		Message: fmt.Sprintf("%s %s → %s %s",
			resp.FromAmount, resp.FromCurrency, resp.ToAmount, resp.ToCurrency),
	}
	c.logger.Info("swap confirmed", zap.String("tx_id", resp.TransactionID))
	c.resetFields()
}

// Reset clears the whole form back to its initial state, notice included.
func (c *Controller) Reset() {
	c.resetFields()
	c.status = StatusIdle
	c.notice = nil
}

// DismissNotice clears the current outcome banner.
func (c *Controller) DismissNotice() {
	c.notice = nil
}

// FromToken returns the selected source token.
func (c *Controller) FromToken() token.Token { return c.fromToken }

// ToToken returns the selected destination token.
func (c *Controller) ToToken() token.Token { return c.toToken }

// FromAmount returns the user-entered amount string.
func (c *Controller) FromAmount() string { return c.fromAmount }

// ToAmount returns the derived amount string. It is never user-editable.
func (c *Controller) ToAmount() string { return c.toAmount }

// Errors returns the current field errors.
func (c *Controller) Errors() FieldErrors { return c.errors }

// Status returns the submission status.
func (c *Controller) Status() Status { return c.status }

// Pending reports whether a submission is in flight.
func (c *Controller) Pending() bool { return c.status == StatusPending }

// Notice returns the current outcome banner, or nil.
func (c *Controller) Notice() *Notice { return c.notice }

// ExchangeRate returns the formatted unit rate between the selected tokens,
// or "" until both are selected.
func (c *Controller) ExchangeRate() string {
	if c.fromToken.Zero() || c.toToken.Zero() {
		return ""
	}
	return exchange.FormatAmount(exchange.Rate(c.fromToken, c.toToken), exchange.AmountDecimals)
}

// FromUSD returns the USD equivalent of the entered amount, or "" when it
// cannot be computed.
func (c *Controller) FromUSD() string {
	return usdEquivalent(c.fromAmount, c.fromToken)
}

// ToUSD returns the USD equivalent of the derived amount, or "" when it
// cannot be computed.
func (c *Controller) ToUSD() string {
	return usdEquivalent(c.toAmount, c.toToken)
}

func (c *Controller) resetFields() {
	c.fromToken = token.Token{}
	c.toToken = token.Token{}
	c.fromAmount = ""
	c.toAmount = ""
	c.errors = FieldErrors{}
}

// recompute keeps toAmount a pure function of the entered amount and the
// selected pair.
func (c *Controller) recompute() {
	c.toAmount = ""
	if c.fromAmount == "" || c.fromToken.Zero() || c.toToken.Zero() {
		return
	}
	amt, ok := parseAmount(c.fromAmount)
	if !ok || amt <= 0 {
		return
	}
	converted := exchange.Convert(amt, c.fromToken, c.toToken)
	c.toAmount = exchange.FormatAmount(converted, exchange.AmountDecimals)
}

func usdEquivalent(amount string, tok token.Token) string {
	if amount == "" || tok.Zero() {
		return ""
	}
	amt, ok := parseAmount(amount)
	if !ok {
		return ""
	}
	return exchange.FormatUSD(amt * tok.Price)
}

// parseAmount accepts only finite numbers; ParseFloat happily returns ±Inf
// for overflowing input and for literal "inf".
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
