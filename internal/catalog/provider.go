// Package catalog supplies the products and categories the widget shows.
package catalog

import (
	"context"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// Provider is a read-only source of catalog data.
type Provider interface {
	// ListFeaturedProducts returns the recommended products for the product grid.
	ListFeaturedProducts(ctx context.Context) ([]models.Product, error)
	// ListCategories returns the browse categories in display order.
	ListCategories(ctx context.Context) ([]models.Category, error)
	// ListCategoryProducts returns the curated entries of one category. It fails
	// with models.ErrUnknownCategory for names outside the taxonomy.
	ListCategoryProducts(ctx context.Context, name models.CategoryName) ([]models.CategoryProduct, error)
	// ListAddableProducts returns the products offered for adding to the cart.
	ListAddableProducts(ctx context.Context) ([]models.Product, error)
}

// FindProduct looks up a product by id among the featured and addable lists.
func FindProduct(ctx context.Context, p Provider, id int) (models.Product, bool, error) {
	featured, err := p.ListFeaturedProducts(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, product := range featured {
		if product.ID == id {
			return product, true, nil
		}
	}
	addable, err := p.ListAddableProducts(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, product := range addable {
		if product.ID == id {
			return product, true, nil
		}
	}
	return models.Product{}, false, nil
}

// FindCategoryProduct looks up a curated entry by its canonical name.
func FindCategoryProduct(ctx context.Context, p Provider, category models.CategoryName, name string) (models.CategoryProduct, bool, error) {
	entries, err := p.ListCategoryProducts(ctx, category)
	if err != nil {
		return models.CategoryProduct{}, false, err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry, true, nil
		}
	}
	return models.CategoryProduct{}, false, nil
}
