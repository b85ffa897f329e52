package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atlas_travel/internal/domain"
)

// Catalog serves the public package pages through a TTL cache, the way the
// site's query cache did: reads populate it, admin package mutations evict
// the common variants, the rest ages out.
type Catalog struct {
	api   domain.CatalogAPI
	cache domain.Cache
	ttl   time.Duration
}

func NewCatalog(api domain.CatalogAPI, cache domain.Cache, ttl time.Duration) *Catalog {
	return &Catalog{api: api, cache: cache, ttl: ttl}
}

func (s *Catalog) List(ctx context.Context, q domain.PackagesQuery) ([]domain.Package, error) {
	key := listKey(q)
	var out []domain.Package
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.api.ListPackages(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, s.ttl)
	}
	return out, nil
}

func (s *Catalog) Get(ctx context.Context, id string) (domain.Package, error) {
	key := packageKey(id)
	var out domain.Package
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.api.GetPackage(ctx, id)
	if err != nil {
		return domain.Package{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, s.ttl)
	}
	return out, nil
}

func packageKey(id string) string { return "package:" + id }

func listKey(q domain.PackagesQuery) string {
	var parts []string
	if q.Destination != nil {
		parts = append(parts, "dest="+strings.ToLower(*q.Destination))
	}
	if q.Category != nil {
		parts = append(parts, "cat="+strings.ToLower(*q.Category))
	}
	if q.Featured != nil {
		parts = append(parts, fmt.Sprintf("featured=%t", *q.Featured))
	}
	if q.Search != nil {
		parts = append(parts, "q="+strings.ToLower(*q.Search))
	}
	if len(parts) == 0 {
		return "packages:all"
	}
	return "packages:" + strings.Join(parts, "&")
}

// invalidatePackageKeys evicts the detail entry and the list variants the
// public pages actually hit (unfiltered and featured). Filtered lists age
// out via TTL instead.
func invalidatePackageKeys(ctx context.Context, cache domain.Cache, id string) {
	if cache == nil {
		return
	}
	_ = cache.Del(ctx, packageKey(id))
	_ = cache.Del(ctx, "packages:all")
	featured := true
	_ = cache.Del(ctx, listKey(domain.PackagesQuery{Featured: &featured}))
}
