package tasks

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/storefront/catalog"
	"github.com/storefront/models"
)

// TaskLogNewProduct is the task name carried in job descriptors.
const TaskLogNewProduct = "store.log_new_product"

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Job is the descriptor handed to the broker.
type Job struct {
	Task      string `json:"task"`
	JobID     string `json:"job_id"`
	ProductID uint   `json:"product_id"`
}

// Result is the terminal outcome of a task execution. Failures are
// reported, never retried.
type Result struct {
	Status      string `json:"status"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ProductFinder looks up the product a task refers to.
type ProductFinder interface {
	GetByID(id uint) (*models.Product, error)
}

// LogNewProduct looks up a product and logs a record describing it. It is
// advisory logging only: running it twice for the same product logs twice,
// and any failure is contained in the returned result.
func LogNewProduct(products ProductFinder, productID uint) Result {
	product, err := products.GetByID(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			log.Printf("ERROR: product with id %d not found", productID)
			return Result{
				Status:    StatusError,
				ProductID: productID,
				Message:   fmt.Sprintf("product with id %d not found", productID),
			}
		}
		log.Printf("ERROR: product lookup failed for id %d: %v", productID, err)
		return Result{
			Status:    StatusError,
			ProductID: productID,
			Message:   err.Error(),
		}
	}

	rule := strings.Repeat("=", 70)
	log.Println(rule)
	log.Println("NEW PRODUCT ADDED TO THE STORE")
	log.Println(rule)
	log.Printf("Product ID: %d", product.ID)
	log.Printf("Name: %s", product.Name)
	log.Printf("Category: %s", product.Category.Name)
	log.Printf("Price: %s", product.Price.StringFixed(2))
	if product.Description != nil {
		log.Printf("Description: %s", *product.Description)
	}
	log.Printf("Created at: %s", product.CreatedAt)
	log.Println(rule)

	return Result{
		Status:      StatusSuccess,
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    product.Category.Name,
		Price:       product.Price.StringFixed(2),
	}
}
