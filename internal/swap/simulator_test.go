package swap

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/token"
)

var testRequest = Request{
	FromToken:  token.Token{Currency: "ETH", Price: 3000},
	ToToken:    token.Token{Currency: "USDC", Price: 1},
	FromAmount: "2",
	ToAmount:   "6000.000000",
}

func newTestSimulator(opts ...SimulatorOption) *Simulator {
	base := []SimulatorOption{WithDelay(time.Millisecond)}
	return NewSimulator(zap.NewNop(), append(base, opts...)...)
}

func TestSimulatorEchoesRequest(t *testing.T) {
	sim := newTestSimulator(WithFailureRate(0))

	resp, err := sim.Submit(context.Background(), testRequest)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "2", resp.FromAmount)
	assert.Equal(t, "6000.000000", resp.ToAmount)
	assert.Equal(t, "ETH", resp.FromCurrency)
	assert.Equal(t, "USDC", resp.ToCurrency)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestSimulatorTransactionIDsAreUnique(t *testing.T) {
	sim := newTestSimulator(WithFailureRate(0))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		resp, err := sim.Submit(context.Background(), testRequest)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.TransactionID, "tx_"))
		assert.False(t, seen[resp.TransactionID], "duplicate id %s", resp.TransactionID)
		seen[resp.TransactionID] = true
	}
}

func TestSimulatorAlwaysFails(t *testing.T) {
	sim := newTestSimulator(WithFailureRate(1))

	resp, err := sim.Submit(context.Background(), testRequest)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSwapFailed)
}

func TestSimulatorFailureRateClamped(t *testing.T) {
	sim := newTestSimulator(WithFailureRate(-0.5))
	resp, err := sim.Submit(context.Background(), testRequest)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestSimulatorDeterministicWithSeededSource(t *testing.T) {
	// With a fixed seed the pass/fail sequence is reproducible.
	first := rolls(t, 42, 20)
	second := rolls(t, 42, 20)
	assert.Equal(t, first, second)
}

func rolls(t *testing.T, seed int64, n int) []bool {
	t.Helper()
	sim := newTestSimulator(
		WithFailureRate(0.5),
		WithRandSource(rand.NewSource(seed)),
	)

	out := make([]bool, 0, n)
	for i := 0; i < n; i++ {
		_, err := sim.Submit(context.Background(), testRequest)
		out = append(out, err == nil)
	}
	return out
}

func TestSimulatorRespectsContextCancellation(t *testing.T) {
	sim := NewSimulator(zap.NewNop(), WithDelay(time.Minute), WithFailureRate(0))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	resp, err := sim.Submit(ctx, testRequest)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimulatorTimestampUsesClock(t *testing.T) {
	fixed := time.Date(2023, 8, 29, 12, 0, 0, 0, time.UTC)
	sim := newTestSimulator(WithFailureRate(0), WithClock(func() time.Time { return fixed }))

	resp, err := sim.Submit(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, fixed, resp.Timestamp)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "tx_1693310400000_"))
}
