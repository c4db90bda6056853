package cache

import (
	"context"
	"fmt"
	"time"

	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/pkg/logger"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// RosterLoader fetches the active encodings for every student enrolled in a
// ficha. The cache calls it on a miss.
type RosterLoader interface {
	ActiveForFicha(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error)
}

var ErrReloadFailed = fmt.Errorf("roster reload failed")

// FichaEncodingCache keeps the per-ficha encoding sets hot so a recognition
// request does not pay the roster query on every camera frame. Concurrent
// misses for the same ficha collapse into a single load.
type FichaEncodingCache struct {
	store  *gocache.Cache
	group  singleflight.Group
	loader RosterLoader
	logger logger.ILogger
}

func NewFichaEncodingCache(loader RosterLoader, ttl time.Duration, log logger.ILogger) *FichaEncodingCache {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &FichaEncodingCache{
		store:  gocache.New(ttl, 10*time.Minute),
		loader: loader,
		logger: log,
	}
}

// EnsureWarm returns the cached encoding set for the ficha, loading it if
// absent. An empty roster is a valid cached value; it is not treated as a
// miss. A failed load caches nothing, so the next call retries.
func (c *FichaEncodingCache) EnsureWarm(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error) {
	key := fichaId.String()
	if cached, found := c.store.Get(key); found {
		return cached.([]facematch.KnownEncoding), nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// Another goroutine may have filled the entry while we queued.
		if cached, found := c.store.Get(key); found {
			return cached, nil
		}
		known, err := c.loader.ActiveForFicha(ctx, fichaId)
		if err != nil {
			return nil, fmt.Errorf("%w: ficha %s: %v", ErrReloadFailed, fichaId, err)
		}
		if known == nil {
			known = []facematch.KnownEncoding{}
		}
		c.store.Set(key, known, gocache.DefaultExpiration)
		return known, nil
	})
	if err != nil {
		return nil, err
	}
	if shared && c.logger != nil {
		c.logger.Debug("cache", "encoding load shared across waiters", map[string]interface{}{"fichaId": key})
	}
	return v.([]facematch.KnownEncoding), nil
}

// Invalidate drops the entry for a ficha. The next EnsureWarm reloads it.
func (c *FichaEncodingCache) Invalidate(fichaId uuid.UUID) {
	c.store.Delete(fichaId.String())
}

// InvalidateAll flushes every ficha entry, used when recognition settings
// change in a way that affects stored encodings.
func (c *FichaEncodingCache) InvalidateAll() {
	c.store.Flush()
}
