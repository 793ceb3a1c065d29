package database

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// CatalogSeed is the data loaded into an empty catalog.
type CatalogSeed struct {
	Featured   []models.Product
	Addable    []models.Product
	Categories []models.Category
	Curated    map[models.CategoryName][]models.CategoryProduct
}

// SeedCatalog loads seed into the catalog tables when they are empty.
func SeedCatalog(db *gorm.DB, seed CatalogSeed) error {
	var count int64
	if err := db.Model(&ProductRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(db, func(tx *gorm.DB) error {
		for _, record := range productRecords(seed) {
			record := record
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to seed product %d: %w", record.ID, err)
			}
		}
		for i, c := range seed.Categories {
			record := CategoryRecord{Name: string(c.Name), Emoji: c.Emoji, Description: c.Description, Position: i}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
			for j, e := range seed.Curated[c.Name] {
				entry := CategoryProductRecord{
					Category:      string(c.Name),
					Name:          e.Name,
					LocalizedName: e.LocalizedName,
					Price:         e.Price,
					Unit:          e.Unit,
					Image:         e.Image,
					Position:      j,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return fmt.Errorf("failed to seed category product %s: %w", e.Name, err)
				}
			}
		}
		return nil
	})
}

// productRecords merges the featured and addable lists into one row per id.
// A product in both lists keeps its featured position.
func productRecords(seed CatalogSeed) []ProductRecord {
	records := make([]ProductRecord, 0, len(seed.Featured)+len(seed.Addable))
	index := make(map[int]int, cap(records))
	for i, p := range seed.Featured {
		if at, ok := index[p.ID]; ok {
			records[at].Featured = true
			continue
		}
		index[p.ID] = len(records)
		records = append(records, NewProductRecord(p, i, true, false))
	}
	for i, p := range seed.Addable {
		if at, ok := index[p.ID]; ok {
			records[at].Addable = true
			continue
		}
		index[p.ID] = len(records)
		records = append(records, NewProductRecord(p, i, false, true))
	}
	return records
}

// SeedOrders loads orders when the order table is empty.
func SeedOrders(db *gorm.DB, orders []models.Order) error {
	var count int64
	if err := db.Model(&OrderRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(db, func(tx *gorm.DB) error {
		for _, o := range orders {
			record := NewOrderRecord(o)
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to seed order %s: %w", o.ID, err)
			}
		}
		return nil
	})
}
