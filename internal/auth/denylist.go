package auth

import (
	"context"
	"time"

	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
)

// Denylist remembers revoked token ids until the token would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// CacheDenylist stores revocations in a cache: the in-memory CacheService for a
// single process, RedisCacheService when instances share state.
type CacheDenylist struct {
	cache common.CacheInterface
	now   func() time.Time
}

var _ Denylist = (*CacheDenylist)(nil)

func NewCacheDenylist(cache common.CacheInterface) *CacheDenylist {
	return &CacheDenylist{cache: cache, now: time.Now}
}

func (d *CacheDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	d.cache.Set(revokedKey(tokenID), true, ttl)
	return nil
}

func (d *CacheDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, found := d.cache.Get(revokedKey(tokenID))
	return found, nil
}

func revokedKey(tokenID string) string {
	return string(constants.CachePrefixRevokedToken) + tokenID
}
