package domain

import (
	"context"
	"errors"
	"time"
)

// ImageUpload is an image received from a client that has passed type and size checks.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage describes a file held by an ImageStore.
type StoredImage struct {
	Ref     string
	ModTime time.Time
}

// ImageStore persists event images and hands out public references such as /uploads/<name>.
type ImageStore interface {
	Save(ctx context.Context, img *ImageUpload) (ref string, err error)
	// Delete is idempotent: removing a missing image is not an error.
	Delete(ctx context.Context, ref string) error
	List(ctx context.Context) ([]StoredImage, error)
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte oriented read cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
