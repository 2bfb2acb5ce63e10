package pricefeed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/swapdesk/swapdesk/internal/token"
)

// DefaultTTL is the freshness window for the cached token list.
const DefaultTTL = 60 * time.Second

// Fetcher retrieves raw price records. *Client satisfies it; tests supply
// fakes.
type Fetcher interface {
	Fetch(ctx context.Context) ([]token.PriceRecord, error)
}

// Cache holds the normalized token list for a freshness window. A refetch
// replaces the set wholesale; there is no incremental merge. The cache is
// owned by the composition root and handed to the UI; no globals.
//
// Concurrent refreshes are resolved by generation: each issued fetch takes a
// ticket, and only the most recently issued fetch may apply its result.
// Out-of-order completions of superseded fetches are discarded.
type Cache struct {
	fetcher     Fetcher
	iconBaseURL string
	ttl         time.Duration
	logger      *zap.Logger

	mu        sync.RWMutex
	tokens    []token.Token
	fetchedAt time.Time
	applied   uint64

	issued uint64 // atomic

	// Statistics (accessed atomically)
	hits   uint64
	misses uint64
}

// NewCache creates a token cache around a fetcher.
func NewCache(fetcher Fetcher, iconBaseURL string, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher:     fetcher,
		iconBaseURL: iconBaseURL,
		ttl:         ttl,
		logger:      logger.Named("token_cache"),
	}
}

// Get returns the cached token list and whether it is still fresh. The
// returned slice is a copy; callers may keep it across refreshes.
func (c *Cache) Get() ([]token.Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fresh := !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl
	if fresh {
		atomic.AddUint64(&c.hits, 1)
	} else {
		atomic.AddUint64(&c.misses, 1)
	}

	return c.snapshotLocked(), fresh
}

// Refresh returns fresh tokens, fetching only when the cached set has aged
// out (or force is set, which backs the manual retry action). On a discarded
// stale completion the current cached set is returned instead.
func (c *Cache) Refresh(ctx context.Context, force bool) ([]token.Token, error) {
	if !force {
		if tokens, fresh := c.Get(); fresh {
			return tokens, nil
		}
	}

	gen := atomic.AddUint64(&c.issued, 1)

	records, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	tokens := token.Normalize(records, c.iconBaseURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != atomic.LoadUint64(&c.issued) || gen < c.applied {
		// A newer fetch was issued while this one was in flight; its result
		// wins regardless of completion order.
		c.logger.Debug("discarding superseded fetch result",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", atomic.LoadUint64(&c.issued)))
		return c.snapshotLocked(), nil
	}

	c.tokens = tokens
	c.fetchedAt = time.Now()
	c.applied = gen

	c.logger.Info("token list replaced",
		zap.Int("tokens", len(tokens)),
		zap.Uint64("generation", gen))

	return c.snapshotLocked(), nil
}

// Stats returns cache hit/miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

func (c *Cache) snapshotLocked() []token.Token {
	out := make([]token.Token, len(c.tokens))
	copy(out, c.tokens)
	return out
}
