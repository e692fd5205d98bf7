package editor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/varlayer/pkg/cache"
	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/placeholder"
	"github.com/dmitrymomot/varlayer/pkg/redis"
)

// PreviewCache stores rendered previews by content key. Implementations
// must be safe for concurrent use; a failing cache behaves as a miss.
type PreviewCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, html string)
}

// Preview renders the template with every variable shown as its default
// value. Orphan tokens are dropped.
func (s *Service) Preview(ctx context.Context, scope Scope) (string, error) {
	t, err := s.load(ctx, scope)
	if err != nil {
		return "", err
	}

	vars := t.Placeholders()
	key := previewKey(t.RawHTML, vars)
	if html, ok := s.cache.Get(ctx, key); ok {
		return html, nil
	}

	html := placeholder.Preview(t.RawHTML, vars)
	s.cache.Set(ctx, key, html)
	return html, nil
}

// previewKey hashes everything the preview depends on, so entries never
// need invalidation.
func previewKey(raw string, vars []placeholder.Variable) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(raw)
	for _, v := range vars {
		write(v.ID)
		write(string(v.Kind))
		write(v.DefaultValue)
	}
	return hex.EncodeToString(h.Sum(nil))
}

type noopPreviewCache struct{}

func (noopPreviewCache) Get(context.Context, string) (string, bool) { return "", false }
func (noopPreviewCache) Set(context.Context, string, string)        {}

type lruPreviewCache struct {
	lru *cache.LRU[string, string]
}

// NewLRUPreviewCache keeps up to size previews in process. A zero ttl keeps
// entries until they are evicted.
func NewLRUPreviewCache(size int, ttl time.Duration) PreviewCache {
	return lruPreviewCache{lru: cache.NewLRU(size, cache.WithTTL[string, string](ttl))}
}

func (c lruPreviewCache) Get(_ context.Context, key string) (string, bool) {
	return c.lru.Get(key)
}

func (c lruPreviewCache) Set(_ context.Context, key, html string) {
	c.lru.Put(key, html)
}

// ByteStore is satisfied by *redis.Store.
type ByteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

var _ ByteStore = (*redis.Store)(nil)

type redisPreviewCache struct {
	store ByteStore
	ttl   time.Duration
	log   *slog.Logger
}

// NewRedisPreviewCache shares previews between instances through Redis.
// Errors are logged and treated as misses.
func NewRedisPreviewCache(store ByteStore, ttl time.Duration, log *slog.Logger) PreviewCache {
	if log == nil {
		log = logger.Discard()
	}
	return redisPreviewCache{store: store, ttl: ttl, log: log.With(logger.Component("preview_cache"))}
}

func (c redisPreviewCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			c.log.WarnContext(ctx, "read preview", logger.Error(err))
		}
		return "", false
	}
	return string(val), true
}

func (c redisPreviewCache) Set(ctx context.Context, key, html string) {
	if err := c.store.Set(ctx, key, []byte(html), c.ttl); err != nil {
		c.log.WarnContext(ctx, "write preview", logger.Error(err))
	}
}
