package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	keyActive   = "active"
	keyFeatured = "featured"
)

// Service fronts the catalog with a read-through listing cache. The
// single-item lookups bypass it so carts always price against live
// catalog state.
type Service struct {
	repo  ProductRepository
	cache ListCache
	sfg   singleflight.Group // Prevents cache stampede
}

// NewService wires the repository and an optional listing cache; pass a
// nil cache to read straight through to Postgres.
func NewService(repo ProductRepository, cache ListCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]*domain.Product, error) {
	return s.cachedList(ctx, keyActive, s.repo.ListActive)
}

func (s *Service) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	return s.cachedList(ctx, keyFeatured, s.repo.ListFeatured)
}

func (s *Service) GetActive(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetActive(ctx, id)
}

func (s *Service) FindActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	return s.repo.FindActiveByIDs(ctx, ids)
}

func (s *Service) cachedList(ctx context.Context, key string, fetch func(context.Context) ([]*domain.Product, error)) ([]*domain.Product, error) {
	if s.cache == nil {
		return fetch(ctx)
	}

	// Use singleflight so concurrent misses for the same listing issue
	// one repository query.
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, cacheErr := s.cache.Get(ctx, key)
		if cacheErr == nil {
			return products, nil
		}

		if !errors.Is(cacheErr, ErrCacheMiss) {
			log.Printf("catalog cache get error: %v", cacheErr)
		}

		products, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}

		go func() {
			if setErr := s.cache.Set(context.Background(), key, products); setErr != nil {
				log.Printf("catalog cache set error: %v", setErr)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}
