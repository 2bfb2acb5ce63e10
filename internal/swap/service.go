package swap

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	// maxTries bounds the whole operation to one automatic retry; a second
	// failure is surfaced to the user instead.
	maxTries = 2

	retryDelay = 200 * time.Millisecond
)

// Service wraps a Submitter with the retry policy and structured logging.
// The form controller talks to the Service, never to a backend directly.
type Service struct {
	submitter Submitter
	logger    *zap.Logger
}

// NewService creates a swap service around the given backend.
func NewService(submitter Submitter, logger *zap.Logger) *Service {
	return &Service{
		submitter: submitter,
		logger:    logger.Named("swap_service"),
	}
}

// Execute submits the swap, retrying the whole operation at most once on
// failure. Context cancellation aborts immediately and is not retried.
func (s *Service) Execute(ctx context.Context, req Request) (*Response, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryDelay
	policy.MaxInterval = retryDelay * 10

	notify := func(err error, duration time.Duration) {
		s.logger.Info("retrying swap after failure",
			zap.Error(err), zap.Duration("backoff", duration))
	}

	operation := func() (*Response, error) {
		resp, err := s.submitter.Submit(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		s.logger.Error("swap failed after retries",
			zap.String("from", req.FromToken.Currency),
			zap.String("to", req.ToToken.Currency),
			zap.Error(err))
		return nil, err
	}

	return resp, nil
}
