package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/storefront/catalog"
	"github.com/storefront/models"
)

// ProductList displays the product listing with optional search and
// category filter. A missing or non-numeric category parameter means no
// filter.
func (h *Handler) ProductList(c *fiber.Ctx) error {
	search := c.Query("search")

	var categoryID uint
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID = uint(id)
		}
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	products, total, err := h.products.List(catalog.ProductFilters{
		Search:     search,
		CategoryID: categoryID,
		Page:       page,
		PerPage:    catalog.DefaultPageSize,
	})
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	totalPages := int((total + catalog.DefaultPageSize - 1) / catalog.DefaultPageSize)

	return c.Render("pages/index", fiber.Map{
		"Title":            "Store",
		"Products":         products,
		"Categories":       categories,
		"SearchQuery":      search,
		"SelectedCategory": categoryID,
		"Total":            total,
		"Page":             page,
		"TotalPages":       totalPages,
		"Flash":            c.Query("flash"),
		"SQLQueries":       c.Locals("SQLQueries"),
		"TotalSQLQueries":  c.Locals("TotalSQLQueries"),
	})
}

// ProductDetail displays a single product page
func (h *Handler) ProductDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Product not found")
	}

	product, err := h.products.GetByID(uint(id))
	if errors.Is(err, catalog.ErrProductNotFound) {
		return h.renderNotFound(c, "Product not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	return c.Render("pages/product_detail", fiber.Map{
		"Title":           product.Name,
		"Product":         product,
		"Categories":      categories,
		"Flash":           c.Query("flash"),
		"SQLQueries":      c.Locals("SQLQueries"),
		"TotalSQLQueries": c.Locals("TotalSQLQueries"),
	})
}

// ProductNew shows the form to create a new product
func (h *Handler) ProductNew(c *fiber.Ctx) error {
	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	return c.Render("pages/product_form", fiber.Map{
		"Title":      "Add product",
		"IsNew":      true,
		"Categories": categories,
		"Input":      catalog.ProductInput{},
		"Errors":     catalog.ValidationErrors{},
	})
}

// ProductCreate validates the submitted form, persists the product and
// enqueues the notification task. An enqueue failure is logged but never
// fails the request.
func (h *Handler) ProductCreate(c *fiber.Ctx) error {
	input := productInputFromForm(c)

	validated, verrs := catalog.ValidateProduct(input, h.categories)
	if verrs != nil {
		return h.renderProductForm(c, "Add product", true, nil, input, verrs)
	}

	product := &models.Product{
		Name:        validated.Name,
		Description: validated.Description,
		Price:       validated.Price,
		CategoryID:  validated.CategoryID,
	}
	if err := h.products.Create(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	if jobID, err := h.enqueuer.EnqueueLogNewProduct(c.Context(), product.ID); err != nil {
		log.Printf("WARNING: could not enqueue notification for product %d: %v", product.ID, err)
	} else {
		log.Printf("Enqueued notification task %s for product %d", jobID, product.ID)
	}

	flash := fmt.Sprintf("Product %q created", product.Name)
	return c.Redirect(fmt.Sprintf("/product/%d?flash=%s", product.ID, url.QueryEscape(flash)))
}

// ProductEdit shows the form to edit an existing product
func (h *Handler) ProductEdit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Product not found")
	}

	product, err := h.products.GetByID(uint(id))
	if errors.Is(err, catalog.ErrProductNotFound) {
		return h.renderNotFound(c, "Product not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	input := catalog.ProductInput{
		Name:       product.Name,
		Price:      product.Price.StringFixed(2),
		CategoryID: strconv.FormatUint(uint64(product.CategoryID), 10),
	}
	if product.Description != nil {
		input.Description = *product.Description
	}

	return h.renderProductForm(c, "Edit product", false, product, input, catalog.ValidationErrors{})
}

// ProductUpdate validates the submitted form and persists the changes.
// Concurrent edits are last-write-wins.
func (h *Handler) ProductUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Product not found")
	}

	product, err := h.products.GetByID(uint(id))
	if errors.Is(err, catalog.ErrProductNotFound) {
		return h.renderNotFound(c, "Product not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	input := productInputFromForm(c)

	validated, verrs := catalog.ValidateProduct(input, h.categories)
	if verrs != nil {
		return h.renderProductForm(c, "Edit product", false, product, input, verrs)
	}

	product.Name = validated.Name
	product.Description = validated.Description
	product.Price = validated.Price
	product.CategoryID = validated.CategoryID
	if err := h.products.Update(product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	flash := fmt.Sprintf("Product %q updated", product.Name)
	return c.Redirect(fmt.Sprintf("/product/%d?flash=%s", product.ID, url.QueryEscape(flash)))
}

// ProductDelete deletes a product and redirects to the listing
func (h *Handler) ProductDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Product not found")
	}

	if err := h.products.Delete(uint(id)); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return h.renderNotFound(c, "Product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return c.Redirect("/?flash=" + url.QueryEscape("Product deleted"))
}

// ProductPriceAction applies a bulk price adjustment to the selected
// products in one transaction.
func (h *Handler) ProductPriceAction(c *fiber.Ctx) error {
	action := catalog.PriceAction(c.FormValue("action"))
	if !action.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown price action")
	}

	var ids []uint
	for _, raw := range c.Request().PostArgs().PeekMulti("product_ids") {
		if id, err := strconv.ParseUint(string(raw), 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}

	updated, err := h.products.AdjustPrices(action, ids)
	if err != nil {
		return fmt.Errorf("failed to adjust prices: %w", err)
	}

	flash := fmt.Sprintf("Prices updated for %d products", updated)
	return c.Redirect("/?flash=" + url.QueryEscape(flash))
}

func productInputFromForm(c *fiber.Ctx) catalog.ProductInput {
	return catalog.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		CategoryID:  c.FormValue("category_id"),
	}
}

// renderProductForm re-renders the product form, echoing the submitted
// values and inline field messages.
func (h *Handler) renderProductForm(c *fiber.Ctx, title string, isNew bool, product *models.Product, input catalog.ProductInput, verrs catalog.ValidationErrors) error {
	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	status := fiber.StatusOK
	if len(verrs) > 0 {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).Render("pages/product_form", fiber.Map{
		"Title":      title,
		"IsNew":      isNew,
		"Product":    product,
		"Categories": categories,
		"Input":      input,
		"Errors":     verrs,
	})
}

func (h *Handler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("pages/error", fiber.Map{
		"Title": "Not found",
		"Error": message,
		"Code":  fiber.StatusNotFound,
	})
}
