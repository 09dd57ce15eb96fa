package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategoryFinder struct {
	existing map[uint]bool
	err      error
}

func (s *stubCategoryFinder) GetByID(id uint) (*models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.existing[id] {
		return &models.Category{ID: id, Name: "Electronics"}, nil
	}
	return nil, ErrCategoryNotFound
}

func validInput() ProductInput {
	return ProductInput{
		Name:       "Phone",
		Price:      "100.00",
		CategoryID: "1",
	}
}

func TestValidateProduct(t *testing.T) {
	finder := &stubCategoryFinder{existing: map[uint]bool{1: true}}

	t.Run("valid input passes", func(t *testing.T) {
		in := validInput()
		in.Description = "  A nice phone  "

		validated, verrs := ValidateProduct(in, finder)

		require.Nil(t, verrs)
		require.NotNil(t, validated)
		assert.Equal(t, "Phone", validated.Name)
		assert.True(t, validated.Price.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, uint(1), validated.CategoryID)
		require.NotNil(t, validated.Description)
		assert.Equal(t, "A nice phone", *validated.Description)
	})

	t.Run("empty description stays nil", func(t *testing.T) {
		validated, verrs := ValidateProduct(validInput(), finder)

		require.Nil(t, verrs)
		assert.Nil(t, validated.Description)
	})

	t.Run("name is trimmed before length check", func(t *testing.T) {
		in := validInput()
		in.Name = "  ab  "

		validated, verrs := ValidateProduct(in, finder)

		assert.Nil(t, validated)
		assert.Equal(t, "name must contain at least 3 characters", verrs["name"])
	})

	t.Run("trimmed name of exactly 3 characters passes", func(t *testing.T) {
		in := validInput()
		in.Name = "  abc  "

		validated, verrs := ValidateProduct(in, finder)

		require.Nil(t, verrs)
		assert.Equal(t, "abc", validated.Name)
	})

	t.Run("negative and zero prices get distinct messages", func(t *testing.T) {
		in := validInput()
		in.Price = "-5"
		_, verrs := ValidateProduct(in, finder)
		assert.Equal(t, "price cannot be negative", verrs["price"])

		in.Price = "0"
		_, verrs = ValidateProduct(in, finder)
		assert.Equal(t, "price must be greater than zero", verrs["price"])
	})

	t.Run("missing price", func(t *testing.T) {
		in := validInput()
		in.Price = ""

		_, verrs := ValidateProduct(in, finder)

		assert.Equal(t, "price is required", verrs["price"])
	})

	t.Run("unparsable price", func(t *testing.T) {
		in := validInput()
		in.Price = "cheap"

		_, verrs := ValidateProduct(in, finder)

		assert.Equal(t, "price must be a valid number", verrs["price"])
	})

	t.Run("price is rounded to two fraction digits", func(t *testing.T) {
		in := validInput()
		in.Price = "10.999"

		validated, verrs := ValidateProduct(in, finder)

		require.Nil(t, verrs)
		assert.Equal(t, "11.00", validated.Price.StringFixed(2))
	})

	t.Run("missing category is a required-field error", func(t *testing.T) {
		in := validInput()
		in.CategoryID = ""

		_, verrs := ValidateProduct(in, finder)

		assert.Equal(t, "category is required", verrs["category"])
	})

	t.Run("unknown category", func(t *testing.T) {
		in := validInput()
		in.CategoryID = "42"

		_, verrs := ValidateProduct(in, finder)

		assert.Equal(t, "category does not exist", verrs["category"])
	})

	t.Run("non-numeric category", func(t *testing.T) {
		in := validInput()
		in.CategoryID = "electronics"

		_, verrs := ValidateProduct(in, finder)

		assert.Equal(t, "category does not exist", verrs["category"])
	})

	t.Run("category lookup failure is not a not-found", func(t *testing.T) {
		broken := &stubCategoryFinder{err: errors.New("connection refused")}

		_, verrs := ValidateProduct(validInput(), broken)

		assert.Equal(t, "category could not be verified", verrs["category"])
	})

	t.Run("multiple failures report every field", func(t *testing.T) {
		in := ProductInput{Name: "ab", Price: "0", CategoryID: ""}

		validated, verrs := ValidateProduct(in, finder)

		assert.Nil(t, validated)
		assert.Len(t, verrs, 3)
	})
}
