package chain

import (
	"context"

	lru "github.com/hashicorp/golang-lru"

	"github.com/deexnet/deex-go/prototype"
)

const defaultCacheSize = 512

// CachingResolver memoizes account and asset lookups in front of another
// resolver pair. Records are immutable enough for a trading session (ids and
// precisions never change; authority changes require a fresh login anyway),
// so entries are kept until evicted by the LRU.
type CachingResolver struct {
	accounts AccountResolver
	assets   AssetResolver

	accountCache *lru.Cache
	assetCache   *lru.Cache
}

func NewCachingResolver(accounts AccountResolver, assets AssetResolver) (*CachingResolver, error) {
	accountCache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	assetCache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &CachingResolver{
		accounts:     accounts,
		assets:       assets,
		accountCache: accountCache,
		assetCache:   assetCache,
	}, nil
}

func (r *CachingResolver) GetAccountByName(ctx context.Context, name string) (*Account, error) {
	if cached, ok := r.accountCache.Get(name); ok {
		return cached.(*Account), nil
	}
	acc, err := r.accounts.GetAccountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.accountCache.Add(name, acc)
	return acc, nil
}

func (r *CachingResolver) LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error) {
	if cached, ok := r.assetCache.Get(symbol); ok {
		return cached.(*prototype.Asset), nil
	}
	asset, err := r.assets.LookupAssetSymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	r.assetCache.Add(symbol, asset)
	return asset, nil
}

// Invalidate drops a cached account record, e.g. after an authority update.
func (r *CachingResolver) Invalidate(name string) {
	r.accountCache.Remove(name)
}

type cachedClient struct {
	Client
	resolver *CachingResolver
}

// WithCache wraps a client so that account and asset lookups are memoized;
// everything else passes through.
func WithCache(client Client) (Client, error) {
	resolver, err := NewCachingResolver(client, client)
	if err != nil {
		return nil, err
	}
	return &cachedClient{Client: client, resolver: resolver}, nil
}

func (c *cachedClient) GetAccountByName(ctx context.Context, name string) (*Account, error) {
	return c.resolver.GetAccountByName(ctx, name)
}

func (c *cachedClient) LookupAssetSymbol(ctx context.Context, symbol string) (*prototype.Asset, error) {
	return c.resolver.LookupAssetSymbol(ctx, symbol)
}

// CoreAssetSymbol forwards to the underlying client when it can answer, so
// sessions keep their default fee asset behind the cache.
func (c *cachedClient) CoreAssetSymbol() string {
	if core, ok := c.Client.(interface{ CoreAssetSymbol() string }); ok {
		return core.CoreAssetSymbol()
	}
	return ""
}
