package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"atlas_travel/internal/app"
	"atlas_travel/internal/domain"
)

func TestList_MissThenHit(t *testing.T) {
	api := &fakeAPI{
		ListPackagesFn: func(domain.PackagesQuery) ([]domain.Package, error) {
			return []domain.Package{{ID: "p1", Name: "Bali Escape"}}, nil
		},
	}
	cache := &fakeCache{}
	c := app.NewCatalog(api, cache, 5*time.Minute)

	first, err := c.List(context.Background(), domain.PackagesQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	second, err := c.List(context.Background(), domain.PackagesQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if api.count("ListPackages") != 1 {
		t.Fatalf("second list should be served from cache, got %d upstream calls", api.count("ListPackages"))
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "p1" {
		t.Fatalf("unexpected results: %v / %v", first, second)
	}
}

func TestList_DistinctQueriesCacheSeparately(t *testing.T) {
	api := &fakeAPI{
		ListPackagesFn: func(q domain.PackagesQuery) ([]domain.Package, error) {
			if q.Featured != nil && *q.Featured {
				return []domain.Package{{ID: "p2", Featured: true}}, nil
			}
			return []domain.Package{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	cache := &fakeCache{}
	c := app.NewCatalog(api, cache, 5*time.Minute)

	featured := true
	if _, err := c.List(context.Background(), domain.PackagesQuery{}); err != nil {
		t.Fatalf("list all: %v", err)
	}
	got, err := c.List(context.Background(), domain.PackagesQuery{Featured: &featured})
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if api.count("ListPackages") != 2 {
		t.Fatalf("distinct queries must each reach upstream once, got %d", api.count("ListPackages"))
	}
	if len(got) != 1 || !got[0].Featured {
		t.Fatalf("unexpected featured list: %v", got)
	}
}

func TestList_UpstreamErrorNotCached(t *testing.T) {
	fail := true
	api := &fakeAPI{
		ListPackagesFn: func(domain.PackagesQuery) ([]domain.Package, error) {
			if fail {
				return nil, errors.New("upstream down")
			}
			return []domain.Package{{ID: "p1"}}, nil
		},
	}
	cache := &fakeCache{}
	c := app.NewCatalog(api, cache, 5*time.Minute)

	if _, err := c.List(context.Background(), domain.PackagesQuery{}); err == nil {
		t.Fatalf("expected upstream error")
	}
	fail = false
	got, err := c.List(context.Background(), domain.PackagesQuery{})
	if err != nil {
		t.Fatalf("list after recovery: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestCatalog_NilCachePassesThrough(t *testing.T) {
	api := &fakeAPI{
		ListPackagesFn: func(domain.PackagesQuery) ([]domain.Package, error) {
			return []domain.Package{{ID: "p1"}}, nil
		},
	}
	c := app.NewCatalog(api, nil, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.List(context.Background(), domain.PackagesQuery{}); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if api.count("ListPackages") != 2 {
		t.Fatalf("without a cache every list goes upstream, got %d", api.count("ListPackages"))
	}
}

func TestGet_MissThenHit(t *testing.T) {
	api := &fakeAPI{
		GetPackageFn: func(id string) (domain.Package, error) {
			return domain.Package{ID: id, Name: "Bali Escape"}, nil
		},
	}
	cache := &fakeCache{}
	c := app.NewCatalog(api, cache, 5*time.Minute)

	for i := 0; i < 2; i++ {
		p, err := c.Get(context.Background(), "p1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if p.ID != "p1" {
			t.Fatalf("unexpected package: %+v", p)
		}
	}
	if api.count("GetPackage") != 1 {
		t.Fatalf("second get should be served from cache, got %d upstream calls", api.count("GetPackage"))
	}
}
