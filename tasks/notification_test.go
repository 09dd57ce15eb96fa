package tasks

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/catalog"
	"github.com/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductFinder struct {
	products map[uint]*models.Product
	err      error
}

func (s *stubProductFinder) GetByID(id uint) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

func TestLogNewProduct(t *testing.T) {
	desc := "Modern smartphone"
	finder := &stubProductFinder{products: map[uint]*models.Product{
		7: {
			ID:          7,
			Name:        "Smartphone",
			Description: &desc,
			Price:       decimal.RequireFromString("29999.00"),
			CreatedAt:   time.Now(),
			CategoryID:  1,
			Category:    models.Category{ID: 1, Name: "Electronics"},
		},
	}}

	t.Run("existing product succeeds", func(t *testing.T) {
		result := LogNewProduct(finder, 7)

		assert.Equal(t, StatusSuccess, result.Status)
		assert.Equal(t, uint(7), result.ProductID)
		assert.Equal(t, "Smartphone", result.ProductName)
		assert.Equal(t, "Electronics", result.Category)
		assert.Equal(t, "29999.00", result.Price)
		assert.Empty(t, result.Message)
	})

	t.Run("missing product is a terminal error result", func(t *testing.T) {
		result := LogNewProduct(finder, 99999)

		assert.Equal(t, StatusError, result.Status)
		assert.Equal(t, uint(99999), result.ProductID)
		assert.Contains(t, result.Message, "not found")
	})

	t.Run("lookup failure is contained in the result", func(t *testing.T) {
		broken := &stubProductFinder{err: errors.New("connection refused")}

		result := LogNewProduct(broken, 7)

		assert.Equal(t, StatusError, result.Status)
		assert.Equal(t, uint(7), result.ProductID)
		assert.Equal(t, "connection refused", result.Message)
	})

	t.Run("running twice logs twice and returns the same result", func(t *testing.T) {
		first := LogNewProduct(finder, 7)
		second := LogNewProduct(finder, 7)
		assert.Equal(t, first, second)
	})
}

func TestJobDescriptorEncoding(t *testing.T) {
	job := Job{Task: TaskLogNewProduct, JobID: "abc-123", ProductID: 42}

	body, err := json.Marshal(job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"task":"store.log_new_product","job_id":"abc-123","product_id":42}`, string(body))

	var decoded Job
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, job, decoded)
}
