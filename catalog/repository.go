package catalog

import (
	"errors"
	"strings"

	"github.com/storefront/models"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category lookup misses.
var ErrCategoryNotFound = errors.New("category not found")

// DefaultPageSize is the number of products shown per listing page.
const DefaultPageSize = 12

// ProductFilters narrows a product listing. Zero values mean "no filter".
type ProductFilters struct {
	// Search matches case-insensitively against product name, product
	// description, or the owning category's name.
	Search string
	// CategoryID restricts to products of exactly this category.
	CategoryID uint
	// Page is 1-based. Out-of-range pages yield an empty result.
	Page    int
	PerPage int
}

// ProductRepository provides catalog queries over products.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns the filtered product listing, newest first, with each
// product's category resolved in the same query. The returned total counts
// all matches before pagination.
func (r *ProductRepository) List(f ProductFilters) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category")

	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		query = query.Where(
			"products.name ILIKE ? OR products.description ILIKE ? OR categories.name ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if f.CategoryID != 0 {
		query = query.Where("products.category_id = ?", f.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	if err := query.
		Order("products.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// escapeLike neutralises LIKE metacharacters in user input so a search for
// "100%" matches the literal text instead of acting as a wildcard.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetByID returns a single product with its category resolved.
func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Latest returns the most recently created product.
func (r *ProductRepository) Latest() (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Order("created_at DESC").First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update persists the given fields for an existing product. Concurrent edits
// are last-write-wins.
func (r *ProductRepository) Update(product *models.Product) error {
	result := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"category_id": product.CategoryID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustPrices applies the given price action to every product in ids within
// a single transaction. Returns the number of products updated.
func (r *ProductRepository) AdjustPrices(action PriceAction, ids []uint) (int64, error) {
	if !action.Valid() {
		return 0, errors.New("unknown price action: " + string(action))
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var updated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		for i := range products {
			newPrice := action.Apply(products[i].Price)
			if err := tx.Model(&products[i]).Update("price", newPrice).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// CategoryRepository provides catalog queries over categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListAll returns every category, name ascending. The category sidebar is
// never filtered.
func (r *CategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Delete removes a category. The products FK is declared ON DELETE CASCADE,
// so every product in the category goes with it.
func (r *CategoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
