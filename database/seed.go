package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/storefront/models"
	"gorm.io/gorm"
)

// SeedStats reports what the seed run did
type SeedStats struct {
	CategoriesCreated int
	ProductsCreated   int
	TotalCategories   int64
	TotalProducts     int64
}

type seedCategory struct {
	name        string
	description string
}

type seedProduct struct {
	name        string
	description string
	price       string
	category    string
}

var seedCategories = []seedCategory{
	{"Electronics", "Electronic devices and gadgets"},
	{"Clothing", "Clothing and accessories"},
	{"Books", "Books and literature"},
}

var seedProducts = []seedProduct{
	{"Smartphone", "Modern smartphone with a great camera", "29999.00", "Electronics"},
	{"Laptop", "Powerful laptop for work and gaming", "89999.00", "Electronics"},
	{"T-Shirt", "Comfortable cotton t-shirt", "999.00", "Clothing"},
	{"Jeans", "Classic denim jeans", "2999.00", "Clothing"},
	{"Python for Beginners", "Introductory programming textbook", "1299.00", "Books"},
	{"Web Development by Example", "Practical guide to building web applications", "1599.00", "Books"},
}

// SeedData inserts sample catalog data. It is idempotent: each named entity is
// created with get-or-create semantics, so re-running it never duplicates rows.
func SeedData(db *gorm.DB) (*SeedStats, error) {
	stats := &SeedStats{}

	err := db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]uint, len(seedCategories))

		for _, sc := range seedCategories {
			desc := sc.description
			category := models.Category{Name: sc.name}
			result := tx.Where(models.Category{Name: sc.name}).
				Attrs(models.Category{Description: &desc}).
				FirstOrCreate(&category)
			if result.Error != nil {
				return fmt.Errorf("failed to seed category %q: %w", sc.name, result.Error)
			}
			if result.RowsAffected > 0 {
				stats.CategoriesCreated++
				log.Printf("  Created category: %s", sc.name)
			} else {
				log.Printf("  Category already exists: %s", sc.name)
			}
			categoryIDs[sc.name] = category.ID
		}

		for _, sp := range seedProducts {
			price, err := decimal.NewFromString(sp.price)
			if err != nil {
				return fmt.Errorf("invalid seed price %q: %w", sp.price, err)
			}
			desc := sp.description
			product := models.Product{Name: sp.name}
			result := tx.Where(models.Product{Name: sp.name}).
				Attrs(models.Product{
					Description: &desc,
					Price:       price,
					CategoryID:  categoryIDs[sp.category],
				}).
				FirstOrCreate(&product)
			if result.Error != nil {
				return fmt.Errorf("failed to seed product %q: %w", sp.name, result.Error)
			}
			if result.RowsAffected > 0 {
				stats.ProductsCreated++
				log.Printf("  Created product: %s", sp.name)
			} else {
				log.Printf("  Product already exists: %s", sp.name)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	db.Model(&models.Category{}).Count(&stats.TotalCategories)
	db.Model(&models.Product{}).Count(&stats.TotalProducts)
	return stats, nil
}
