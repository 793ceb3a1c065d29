package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

const (
	keyFeatured   = "featured"
	keyAddable    = "addable"
	keyCategories = "categories"
)

// Cached is a read-through decorator that keeps provider results for a TTL.
// Errors are never cached. Returned slices are shared and must not be modified.
type Cached struct {
	next       Provider
	products   *expirable.LRU[string, []models.Product]
	categories *expirable.LRU[string, []models.Category]
	curated    *expirable.LRU[models.CategoryName, []models.CategoryProduct]
}

// NewCached wraps next. size bounds each cache and ttl controls freshness.
func NewCached(next Provider, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 16
	}
	return &Cached{
		next:       next,
		products:   expirable.NewLRU[string, []models.Product](size, nil, ttl),
		categories: expirable.NewLRU[string, []models.Category](size, nil, ttl),
		curated:    expirable.NewLRU[models.CategoryName, []models.CategoryProduct](size, nil, ttl),
	}
}

func (c *Cached) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return c.loadProducts(ctx, keyFeatured, c.next.ListFeaturedProducts)
}

func (c *Cached) ListAddableProducts(ctx context.Context) ([]models.Product, error) {
	return c.loadProducts(ctx, keyAddable, c.next.ListAddableProducts)
}

func (c *Cached) ListCategories(ctx context.Context) ([]models.Category, error) {
	if v, ok := c.categories.Get(keyCategories); ok {
		return v, nil
	}
	v, err := c.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.categories.Add(keyCategories, v)
	return v, nil
}

func (c *Cached) ListCategoryProducts(ctx context.Context, name models.CategoryName) ([]models.CategoryProduct, error) {
	if v, ok := c.curated.Get(name); ok {
		return v, nil
	}
	v, err := c.next.ListCategoryProducts(ctx, name)
	if err != nil {
		return nil, err
	}
	c.curated.Add(name, v)
	return v, nil
}

// Invalidate drops every cached entry.
func (c *Cached) Invalidate() {
	c.products.Purge()
	c.categories.Purge()
	c.curated.Purge()
}

func (c *Cached) loadProducts(ctx context.Context, key string, load func(context.Context) ([]models.Product, error)) ([]models.Product, error) {
	if v, ok := c.products.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.products.Add(key, v)
	return v, nil
}
