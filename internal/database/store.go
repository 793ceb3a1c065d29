package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// CatalogStore serves the catalog from the database.
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a catalog backed by db.
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.listProducts(ctx, "featured = ?")
}

func (s *CatalogStore) ListAddableProducts(ctx context.Context) ([]models.Product, error) {
	return s.listProducts(ctx, "addable = ?")
}

func (s *CatalogStore) listProducts(ctx context.Context, where string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := s.db.Where(where, true).Order("position, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.ToProduct())
	}
	return products, nil
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []CategoryRecord
	if err := s.db.Order("position").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, r.ToCategory())
	}
	return categories, nil
}

func (s *CatalogStore) ListCategoryProducts(ctx context.Context, name models.CategoryName) ([]models.CategoryProduct, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("list category products %q: %w", name, models.ErrUnknownCategory)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []CategoryProductRecord
	if err := s.db.Where("category = ?", string(name)).Order("position, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query category products: %w", err)
	}
	entries := make([]models.CategoryProduct, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.ToCategoryProduct())
	}
	return entries, nil
}

// OrderStore serves the order history from the database.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order registry backed by db.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := s.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("order_date desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []OrderRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, r.ToOrder())
	}
	return orders, nil
}

// SaveOrder inserts or replaces an order and its lines.
func (s *OrderStore) SaveOrder(ctx context.Context, o models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return withTx(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&OrderLineRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear order lines: %w", err)
		}
		if err := tx.Where("id = ?", o.ID).Delete(&OrderRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear order %s: %w", o.ID, err)
		}
		record := NewOrderRecord(o)
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to save order %s: %w", o.ID, err)
		}
		return nil
	})
}
