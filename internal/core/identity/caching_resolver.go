package identity

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachingResolver wraps a base resolver with a bounded TTL cache of positive
// resolutions. Failures are never cached: a bad token stays bad on its own,
// and an unavailable authority should be retried.
type cachingResolver struct {
	base  Resolver
	cache *expirable.LRU[string, int64]
}

// NewCachingResolver wraps base with an in-memory cache of up to size
// credentials, each valid for ttl.
func NewCachingResolver(base Resolver, size int, ttl time.Duration) Resolver {
	return &cachingResolver{
		base:  base,
		cache: expirable.NewLRU[string, int64](size, nil, ttl),
	}
}

// Resolve checks the cache first, then falls back to the base resolver
func (r *cachingResolver) Resolve(ctx context.Context, credential string) (int64, error) {
	if userID, ok := r.cache.Get(credential); ok {
		return userID, nil
	}

	userID, err := r.base.Resolve(ctx, credential)
	if err != nil {
		return 0, err
	}

	r.cache.Add(credential, userID)
	return userID, nil
}
