package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/swap"
	"github.com/swapdesk/swapdesk/internal/token"
)

var (
	eth  = token.Token{Currency: "ETH", Price: 3000}
	usdc = token.Token{Currency: "USDC", Price: 1}
)

func newController() *Controller {
	return New(zap.NewNop())
}

func filledController() *Controller {
	c := newController()
	c.SetFromToken(eth)
	c.SetToToken(usdc)
	c.SetFromAmount("2")
	return c
}

func TestRecomputeOnAmountEntry(t *testing.T) {
	c := filledController()

	assert.Equal(t, "6000.000000", c.ToAmount())
	assert.Equal(t, "6000.00", c.FromUSD())
	assert.Equal(t, "6000.00", c.ToUSD())
	assert.Equal(t, "3000.000000", c.ExchangeRate())
}

func TestRecomputeOnTokenChange(t *testing.T) {
	c := newController()
	c.SetFromAmount("2")
	assert.Empty(t, c.ToAmount(), "no derived amount without both tokens")

	c.SetFromToken(eth)
	assert.Empty(t, c.ToAmount())

	c.SetToToken(usdc)
	assert.Equal(t, "6000.000000", c.ToAmount())

	c.SetToToken(eth)
	assert.Equal(t, "2.000000", c.ToAmount())
}

func TestDerivedAmountClearedOnBadInput(t *testing.T) {
	c := filledController()
	c.SetFromAmount("not a number")
	assert.Empty(t, c.ToAmount())
	assert.Empty(t, c.FromUSD())
}

func TestFlipSwapsPairAndRecomputes(t *testing.T) {
	c := filledController()

	c.Flip()
	assert.Equal(t, "USDC", c.FromToken().Currency)
	assert.Equal(t, "ETH", c.ToToken().Currency)
	assert.Equal(t, "6000.000000", c.FromAmount())
	assert.Equal(t, "2.000000", c.ToAmount())
}

func TestFlipTwiceReturnsToOriginalSelection(t *testing.T) {
	c := filledController()

	c.Flip()
	c.Flip()

	assert.Equal(t, "ETH", c.FromToken().Currency)
	assert.Equal(t, "USDC", c.ToToken().Currency)
	// The entered amount is the recomputed derived value, equal to the
	// original up to formatting.
	assert.Equal(t, "2.000000", c.FromAmount())
	assert.Equal(t, "6000.000000", c.ToAmount())
}

func TestFlipClearsErrors(t *testing.T) {
	c := newController()
	_, ok := c.BeginSubmit()
	require.False(t, ok)
	require.False(t, c.Errors().Empty())

	c.Flip()
	assert.True(t, c.Errors().Empty())
}

func TestSubmitWithoutFromTokenSetsFieldErrorOnly(t *testing.T) {
	c := newController()
	c.SetToToken(usdc)
	c.SetFromAmount("2")

	req, ok := c.BeginSubmit()
	assert.False(t, ok, "no network call may happen")
	assert.Zero(t, req)
	assert.Equal(t, MsgSelectToken, c.Errors().FromToken)
	assert.Empty(t, c.Errors().ToToken)
	assert.Empty(t, c.Errors().FromAmount)
	assert.Equal(t, StatusIdle, c.Status())
}

func TestSubmitCollectsAllViolationsAtOnce(t *testing.T) {
	c := newController()

	_, ok := c.BeginSubmit()
	require.False(t, ok)

	errs := c.Errors()
	assert.Equal(t, MsgSelectToken, errs.FromToken)
	assert.Equal(t, MsgSelectToken, errs.ToToken)
	assert.Equal(t, MsgEnterAmount, errs.FromAmount)
}

func TestSubmitAmountValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"absent", "", MsgEnterAmount},
		{"negative", "-5", MsgInvalidAmount},
		{"zero", "0", MsgInvalidAmount},
		{"garbage", "abc", MsgInvalidAmount},
		{"infinite", "1e999", MsgInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			c.SetFromToken(eth)
			c.SetToToken(usdc)
			c.SetFromAmount(tt.amount)

			_, ok := c.BeginSubmit()
			assert.False(t, ok)
			assert.Equal(t, tt.want, c.Errors().FromAmount)
		})
	}
}

func TestSubmitRejectsIdenticalCurrencies(t *testing.T) {
	c := newController()
	c.SetFromToken(eth)
	c.SetToToken(eth)
	c.SetFromAmount("1")

	_, ok := c.BeginSubmit()
	assert.False(t, ok)
	assert.Equal(t, MsgDifferentToken, c.Errors().ToToken)
}

func TestEditingClearsFieldError(t *testing.T) {
	c := newController()
	_, _ = c.BeginSubmit()
	require.False(t, c.Errors().Empty())

	c.SetFromToken(eth)
	assert.Empty(t, c.Errors().FromToken)
	assert.Equal(t, MsgSelectToken, c.Errors().ToToken, "other errors stay")

	c.SetToToken(usdc)
	assert.Empty(t, c.Errors().ToToken)

	c.SetFromAmount("2")
	assert.True(t, c.Errors().Empty())
}

func TestBeginSubmitTransitionsToPending(t *testing.T) {
	c := filledController()

	req, ok := c.BeginSubmit()
	require.True(t, ok)
	assert.Equal(t, StatusPending, c.Status())
	assert.True(t, c.Pending())
	assert.Equal(t, "ETH", req.FromToken.Currency)
	assert.Equal(t, "USDC", req.ToToken.Currency)
	assert.Equal(t, "2", req.FromAmount)
	assert.Equal(t, "6000.000000", req.ToAmount)
}

func TestSecondSubmitRefusedWhilePending(t *testing.T) {
	c := filledController()

	_, ok := c.BeginSubmit()
	require.True(t, ok)

	_, ok = c.BeginSubmit()
	assert.False(t, ok)
}

func TestSuccessfulSwapResetsForm(t *testing.T) {
	c := filledController()
	_, ok := c.BeginSubmit()
	require.True(t, ok)

	c.CompleteSubmit(&swap.Response{
		Success:       true,
		TransactionID: "tx_1",
		FromAmount:    "2",
		ToAmount:      "6000.000000",
		FromCurrency:  "ETH",
		ToCurrency:    "USDC",
	}, nil)

	assert.Equal(t, StatusIdle, c.Status())
	assert.True(t, c.FromToken().Zero())
	assert.True(t, c.ToToken().Zero())
	assert.Empty(t, c.FromAmount())
	assert.Empty(t, c.ToAmount())
	assert.True(t, c.Errors().Empty())

	notice := c.Notice()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeSuccess, notice.Kind)
	assert.Equal(t, "2 ETH → 6000.000000 USDC", notice.Message)
}

func TestFailedSwapPreservesForm(t *testing.T) {
	c := filledController()
	_, ok := c.BeginSubmit()
	require.True(t, ok)

	c.CompleteSubmit(nil, swap.ErrSwapFailed)

	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, "ETH", c.FromToken().Currency)
	assert.Equal(t, "USDC", c.ToToken().Currency)
	assert.Equal(t, "2", c.FromAmount())
	assert.Equal(t, "6000.000000", c.ToAmount())
	assert.True(t, c.Errors().Empty())

	notice := c.Notice()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Equal(t, "Transaction failed. Please try again.", notice.Message)

	c.DismissNotice()
	assert.Nil(t, c.Notice())
}

func TestResetClearsEverything(t *testing.T) {
	c := filledController()
	_, _ = c.BeginSubmit()
	c.CompleteSubmit(nil, swap.ErrSwapFailed)

	c.Reset()
	assert.True(t, c.FromToken().Zero())
	assert.Empty(t, c.FromAmount())
	assert.Nil(t, c.Notice())
	assert.Equal(t, StatusIdle, c.Status())
}

func TestExchangeRateRequiresBothTokens(t *testing.T) {
	c := newController()
	assert.Empty(t, c.ExchangeRate())
	c.SetFromToken(eth)
	assert.Empty(t, c.ExchangeRate())
	c.SetToToken(usdc)
	assert.Equal(t, "3000.000000", c.ExchangeRate())
}
