package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Getter performs a GET and decodes the body into out.
type Getter interface {
	Get(ctx context.Context, path string, out any) error
}

// Loader serves reads from the cache and falls through to the API when an
// entry is missing, stale or older than staleAfter.
type Loader struct {
	cache      Cache
	api        Getter
	staleAfter time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewLoader returns a Loader. A zero staleAfter means entries only expire by
// invalidation. logger may be nil.
func NewLoader(cache Cache, api Getter, staleAfter time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cache:      cache,
		api:        api,
		staleAfter: staleAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// Cache returns the underlying cache.
func (l *Loader) Cache() Cache {
	return l.cache
}

func (l *Loader) fresh(e Entry) bool {
	if e.Stale {
		return false
	}
	if l.staleAfter > 0 && l.now().Sub(e.StoredAt) > l.staleAfter {
		return false
	}
	return true
}

// Load decodes the value for key into out, fetching path when the cache
// cannot serve it.
func (l *Loader) Load(ctx context.Context, key, path string, out any) error {
	if e, ok, err := l.cache.Get(key); err != nil {
		l.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok && l.fresh(e) {
		if err := json.Unmarshal(e.Value, out); err == nil {
			l.logger.Debug("cache hit", zap.String("key", key))
			return nil
		}
		l.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	var raw json.RawMessage
	if err := l.api.Get(ctx, path, &raw); err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	if err := l.cache.Set(key, raw); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	l.logger.Debug("cache fill", zap.String("key", key), zap.Int("bytes", len(raw)))
	return nil
}

// Fetch is Load with the result type spelled out.
func Fetch[T any](ctx context.Context, l *Loader, key, path string) (T, error) {
	var out T
	err := l.Load(ctx, key, path, &out)
	return out, err
}
