package share

import (
	"context"
	"time"

	"raindrop/pkg/cache"
	"raindrop/pkg/models/private"
)

const contentKey = "content"

type cacheMiddleware struct {
	svc   Content
	cache *cache.SimpleCache
}

func (c *cacheMiddleware) GetContent(ctx context.Context) (*private.SharedContent, error) {
	if v, ok := c.cache.Get(contentKey); ok {
		return v.(*private.SharedContent), nil
	}

	content, err := c.svc.GetContent(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(contentKey, content)
	return content, nil
}

// NewCacheMiddleware keeps the shared content for ttl. A zero ttl disables caching.
func NewCacheMiddleware(svc Content, ttl time.Duration) Content {
	if ttl <= 0 {
		return svc
	}

	return &cacheMiddleware{
		svc:   svc,
		cache: cache.NewSimpleCache(ttl),
	}
}
