package tasks

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResultSaver struct {
	saved map[string]Result
	err   error
}

func (s *stubResultSaver) Save(ctx context.Context, jobID string, result Result) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = map[string]Result{}
	}
	s.saved[jobID] = result
	return nil
}

func newTestWorker(finder ProductFinder, saver ResultSaver) *Worker {
	return &Worker{queue: "store_tasks", products: finder, results: saver}
}

func TestWorkerHandle(t *testing.T) {
	finder := &stubProductFinder{products: map[uint]*models.Product{
		1: {
			ID:       1,
			Name:     "Laptop",
			Price:    decimal.RequireFromString("899.00"),
			Category: models.Category{ID: 1, Name: "Electronics"},
		},
	}}

	t.Run("valid job saves a success result under its job id", func(t *testing.T) {
		saver := &stubResultSaver{}
		w := newTestWorker(finder, saver)

		w.handle(0, amqp.Delivery{Body: []byte(`{"task":"store.log_new_product","job_id":"job-1","product_id":1}`)})

		result, ok := saver.saved["job-1"]
		require.True(t, ok)
		assert.Equal(t, StatusSuccess, result.Status)
		assert.Equal(t, "Laptop", result.ProductName)
	})

	t.Run("missing product saves an error result", func(t *testing.T) {
		saver := &stubResultSaver{}
		w := newTestWorker(finder, saver)

		w.handle(0, amqp.Delivery{Body: []byte(`{"task":"store.log_new_product","job_id":"job-2","product_id":404}`)})

		result, ok := saver.saved["job-2"]
		require.True(t, ok)
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.Message, "not found")
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		saver := &stubResultSaver{}
		w := newTestWorker(finder, saver)

		w.handle(0, amqp.Delivery{Body: []byte(`{not json`)})

		assert.Empty(t, saver.saved)
	})

	t.Run("unknown task name is dropped", func(t *testing.T) {
		saver := &stubResultSaver{}
		w := newTestWorker(finder, saver)

		w.handle(0, amqp.Delivery{Body: []byte(`{"task":"store.mystery","job_id":"job-3","product_id":1}`)})

		assert.Empty(t, saver.saved)
	})

	t.Run("save failure does not panic", func(t *testing.T) {
		saver := &stubResultSaver{err: assert.AnError}
		w := newTestWorker(finder, saver)

		assert.NotPanics(t, func() {
			w.handle(0, amqp.Delivery{Body: []byte(`{"task":"store.log_new_product","job_id":"job-4","product_id":1}`)})
		})
	})
}
