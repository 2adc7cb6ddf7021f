package cache

import (
	"context"
	"time"

	"evently/internal/domain"
)

// NoopCache always misses. It is used when REDIS_URL is not configured.
type NoopCache struct{}

var _ domain.Cache = NoopCache{}

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, domain.ErrCacheMiss }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func (NoopCache) DeletePrefix(context.Context, string) error { return nil }
