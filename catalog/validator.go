package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/models"
)

// CategoryFinder resolves a category reference during validation.
type CategoryFinder interface {
	GetByID(id uint) (*models.Category, error)
}

// ProductInput carries raw form field values for a product.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
}

// ValidationErrors maps field names to user-facing messages.
type ValidationErrors map[string]string

// ValidatedProduct is a product record that passed all field rules.
type ValidatedProduct struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	CategoryID  uint
}

// ValidateProduct checks raw field values against the catalog's business
// rules. It has no side effects; persistence is a separate step. On failure
// it returns nil and a non-empty error map.
func ValidateProduct(in ProductInput, categories CategoryFinder) (*ValidatedProduct, ValidationErrors) {
	verrs := ValidationErrors{}

	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 3 {
		verrs["name"] = "name must contain at least 3 characters"
	}

	var price decimal.Decimal
	if strings.TrimSpace(in.Price) == "" {
		verrs["price"] = "price is required"
	} else if p, err := decimal.NewFromString(strings.TrimSpace(in.Price)); err != nil {
		verrs["price"] = "price must be a valid number"
	} else if p.IsNegative() {
		verrs["price"] = "price cannot be negative"
	} else if p.IsZero() {
		verrs["price"] = "price must be greater than zero"
	} else {
		price = p.Round(2)
	}

	var categoryID uint
	if strings.TrimSpace(in.CategoryID) == "" {
		verrs["category"] = "category is required"
	} else if id, err := strconv.ParseUint(strings.TrimSpace(in.CategoryID), 10, 32); err != nil {
		verrs["category"] = "category does not exist"
	} else if _, err := categories.GetByID(uint(id)); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			verrs["category"] = "category does not exist"
		} else {
			verrs["category"] = "category could not be verified"
		}
	} else {
		categoryID = uint(id)
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	validated := &ValidatedProduct{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		validated.Description = &desc
	}
	return validated, nil
}
