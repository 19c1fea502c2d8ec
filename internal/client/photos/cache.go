// Package photos keeps display-photo URLs for candidates in a small
// in-memory cache in front of the remote photo source.
package photos

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/coocood/freecache"
	"github.com/dmitrijs2005/talentledger/internal/logging"
)

// Source resolves photo URLs for a batch of candidate ids. Ids without a
// photo are absent from the result.
type Source interface {
	PhotoURLs(ctx context.Context, candidateIDs []string) (map[string]string, error)
}

type Cache struct {
	src    Source
	cache  *freecache.Cache
	ttl    int
	logger logging.Logger
}

// NewCache returns a caching photo resolver. A zero ttl keeps entries until
// they are evicted for space. Presigned URLs expire on the server side, so
// ttl should stay below their lifetime.
func NewCache(src Source, sizeBytes int, ttl time.Duration, logger logging.Logger) *Cache {
	return &Cache{
		src:    src,
		cache:  freecache.NewCache(sizeBytes),
		ttl:    ttlSeconds(ttl),
		logger: logger,
	}
}

// ttlSeconds rounds up to whole seconds; freecache reads 0 as no expiry.
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}

func cacheKey(id string) []byte {
	return []byte("photo:" + id)
}

// URLs returns the known URLs for candidateIDs. Misses are fetched from the
// source in one batch. On a source failure the cached part is still
// returned together with the error.
func (c *Cache) URLs(ctx context.Context, candidateIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(candidateIDs))
	var misses []string

	for _, id := range candidateIDs {
		if v, err := c.cache.Get(cacheKey(id)); err == nil {
			out[id] = string(v)
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return out, nil
	}

	c.logger.Debug(ctx, "photo cache miss", "hits", len(out), "misses", len(misses))

	fetched, err := c.src.PhotoURLs(ctx, misses)
	if err != nil {
		return out, fmt.Errorf("photo lookup: %w", err)
	}

	for id, url := range fetched {
		out[id] = url
		if err := c.cache.Set(cacheKey(id), []byte(url), c.ttl); err != nil {
			c.logger.Warn(ctx, "photo cache set failed", "candidate_id", id, "error", err)
		}
	}
	return out, nil
}
