package swap

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const (
	// DefaultDelay emulates backend latency.
	DefaultDelay = 1500 * time.Millisecond
	// DefaultFailureRate is the independent probability that a simulated
	// swap fails, exercising the error paths above.
	DefaultFailureRate = 0.10

	txSuffixLen = 7
)

// Simulator is a stand-in trading backend. Every call waits for the
// configured delay, then either fails with ErrSwapFailed at the configured
// probability or echoes the request back with a fresh transaction id.
type Simulator struct {
	delay       time.Duration
	failureRate float64
	logger      *zap.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	suffix  func() string
	nowFunc func() time.Time
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithDelay overrides the simulated latency.
func WithDelay(d time.Duration) SimulatorOption {
	return func(s *Simulator) { s.delay = d }
}

// WithFailureRate overrides the failure probability. Values outside [0, 1]
// are clamped.
func WithFailureRate(rate float64) SimulatorOption {
	return func(s *Simulator) {
		if rate < 0 {
			rate = 0
		}
		if rate > 1 {
			rate = 1
		}
		s.failureRate = rate
	}
}

// WithRandSource makes failure injection deterministic in tests.
func WithRandSource(src rand.Source) SimulatorOption {
	return func(s *Simulator) { s.rng = rand.New(src) }
}

// WithClock overrides the timestamp source in tests.
func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) { s.nowFunc = now }
}

// NewSimulator creates a simulated trading backend.
func NewSimulator(logger *zap.Logger, opts ...SimulatorOption) *Simulator {
	suffix, err := nanoid.CustomASCII("abcdefghijklmnopqrstuvwxyz0123456789", txSuffixLen)
	if err != nil {
		// The alphabet and length are compile-time constants; CustomASCII
		// only rejects invalid ones.
		panic(err)
	}

	s := &Simulator{
		delay:       DefaultDelay,
		failureRate: DefaultFailureRate,
		logger:      logger.Named("swap_simulator"),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		suffix:      suffix,
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements Submitter. The artificial delay respects context
// cancellation so shutdown does not hang on an in-flight swap.
func (s *Simulator) Submit(ctx context.Context, req Request) (*Response, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll < s.failureRate {
		s.logger.Warn("simulated swap failure",
			zap.String("from", req.FromToken.Currency),
			zap.String("to", req.ToToken.Currency),
			zap.Float64("roll", roll))
		return nil, ErrSwapFailed
	}

	now := s.nowFunc()
	resp := &Response{
		Success:       true,
		TransactionID: fmt.Sprintf("tx_%d_%s", now.UnixMilli(), s.suffix()),
		FromAmount:    req.FromAmount,
		ToAmount:      req.ToAmount,
		FromCurrency:  req.FromToken.Currency,
		ToCurrency:    req.ToToken.Currency,
		Timestamp:     now,
	}

	s.logger.Info("simulated swap executed",
		zap.String("tx_id", resp.TransactionID),
		zap.String("from", resp.FromCurrency),
		zap.String("to", resp.ToCurrency),
		zap.String("from_amount", resp.FromAmount),
		zap.String("to_amount", resp.ToAmount))

	return resp, nil
}
