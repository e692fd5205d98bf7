package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/cache"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

// Cache holds resolved accounts between requests.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (catalog.Account, bool)
	Set(ctx context.Context, a catalog.Account) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID) (catalog.Account, bool) { return catalog.Account{}, false }
func (noopCache) Set(context.Context, catalog.Account) error           { return nil }

type lruCache struct {
	lru *cache.LRU[uuid.UUID, catalog.Account]
}

// NewLRUCache keeps up to size accounts in process for ttl.
func NewLRUCache(size int, ttl time.Duration) Cache {
	return lruCache{lru: cache.NewLRU(size, cache.WithTTL[uuid.UUID, catalog.Account](ttl))}
}

func (c lruCache) Get(_ context.Context, id uuid.UUID) (catalog.Account, bool) {
	return c.lru.Get(id)
}

func (c lruCache) Set(_ context.Context, a catalog.Account) error {
	c.lru.Put(a.ID, a)
	return nil
}
