package handlers

import (
	"github.com/storefront/catalog"
	"github.com/storefront/models"
	"github.com/storefront/tasks"
)

// ProductStore is the product repository surface the handlers use.
type ProductStore interface {
	List(f catalog.ProductFilters) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	AdjustPrices(action catalog.PriceAction, ids []uint) (int64, error)
}

// CategoryStore is the category repository surface the handlers use.
type CategoryStore interface {
	ListAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Delete(id uint) error
}

// Handler holds the dependencies for all web handlers.
type Handler struct {
	products   ProductStore
	categories CategoryStore
	enqueuer   tasks.Enqueuer
}

// New creates a Handler wired to the given stores and task enqueuer.
func New(products ProductStore, categories CategoryStore, enqueuer tasks.Enqueuer) *Handler {
	return &Handler{
		products:   products,
		categories: categories,
		enqueuer:   enqueuer,
	}
}
