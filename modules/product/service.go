// Package product provides the product service with optional caching.
package product

import (
	"context"
	"log"
	"strconv"

	"github.com/example/produto-api/domain/product"
	"github.com/example/produto-api/modules/cache"
	"golang.org/x/sync/singleflight"
)

const listCacheKey = "list"

// Service provides product operations. When a cache is configured, reads
// go through a cache-aside path and writes invalidate it; handlers observe
// the same contract either way.
type Service struct {
	repo    *product.Repository
	cache   *cache.Cache // nil disables caching
	sfGroup singleflight.Group
}

// NewService creates a new product service.
func NewService(repo *product.Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
	}
}

func cacheKeyByID(id uint) string {
	return "id:" + strconv.FormatUint(uint64(id), 10)
}

// List retrieves all products.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	if s.cache != nil {
		var cached []product.Product
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			log.Printf("[product] Cache error for list: %v", err)
		}
		if found {
			return cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(listCacheKey, func() (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	products := val.([]product.Product)

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, products); err != nil {
			log.Printf("[product] Warning: failed to cache list: %v", err)
		}
	}
	return products, nil
}

// GetByID retrieves a product by id. Returns (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	key := cacheKeyByID(id)

	if s.cache != nil {
		var cached product.Product
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("[product] Cache error for ID=%d: %v", id, err)
		}
		if found {
			return &cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	p, _ := val.(*product.Product)
	if p == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, p); err != nil {
			log.Printf("[product] Warning: failed to cache product ID=%d: %v", id, err)
		}
	}
	return p, nil
}

// Create inserts a new product and invalidates the cache.
func (s *Service) Create(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	p := &product.Product{
		Descricao: req.Descricao,
		Valor:     *req.Valor,
		Marca:     req.Marca,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Update applies the fields present in req to the stored row; absent
// fields are left untouched. Returns (nil, nil) when the row does not
// exist.
func (s *Service) Update(ctx context.Context, id uint, req *product.UpdateProductRequest) (*product.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := s.repo.Patch(ctx, id, req.Changes()); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a product. Returns false when no row matched.
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if found {
		s.invalidate(ctx)
	}
	return found, nil
}

// invalidate drops every cached product entry after a mutation.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("[product] Warning: failed to invalidate cache: %v", err)
	}
}
