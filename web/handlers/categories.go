package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/storefront/catalog"
	"github.com/storefront/models"
)

// CategoryDetail displays a category with its products, newest first
func (h *Handler) CategoryDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Category not found")
	}

	category, err := h.categories.GetByID(uint(id))
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		return h.renderNotFound(c, "Category not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	products, total, err := h.products.List(catalog.ProductFilters{
		CategoryID: category.ID,
		Page:       page,
		PerPage:    catalog.DefaultPageSize,
	})
	if err != nil {
		return fmt.Errorf("failed to list category products: %w", err)
	}

	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	totalPages := int((total + catalog.DefaultPageSize - 1) / catalog.DefaultPageSize)

	return c.Render("pages/category_detail", fiber.Map{
		"Title":           category.Name,
		"Category":        category,
		"Products":        products,
		"Categories":      categories,
		"Total":           total,
		"Page":            page,
		"TotalPages":      totalPages,
		"Flash":           c.Query("flash"),
		"SQLQueries":      c.Locals("SQLQueries"),
		"TotalSQLQueries": c.Locals("TotalSQLQueries"),
	})
}

// CategoryNew shows the form to create a new category
func (h *Handler) CategoryNew(c *fiber.Ctx) error {
	return c.Render("pages/category_form", fiber.Map{
		"Title":  "Add category",
		"Errors": catalog.ValidationErrors{},
	})
}

// CategoryCreate creates a new category from the submitted form
func (h *Handler) CategoryCreate(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Status(fiber.StatusBadRequest).Render("pages/category_form", fiber.Map{
			"Title":       "Add category",
			"Name":        name,
			"Description": c.FormValue("description"),
			"Errors":      catalog.ValidationErrors{"name": "name is required"},
		})
	}

	category := &models.Category{Name: name}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		category.Description = &desc
	}
	if err := h.categories.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	flash := fmt.Sprintf("Category %q created", category.Name)
	return c.Redirect(fmt.Sprintf("/category/%d?flash=%s", category.ID, url.QueryEscape(flash)))
}

// CategoryDelete deletes a category; its products are removed by the
// database cascade.
func (h *Handler) CategoryDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.renderNotFound(c, "Category not found")
	}

	if err := h.categories.Delete(uint(id)); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			return h.renderNotFound(c, "Category not found")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return c.Redirect("/?flash=" + url.QueryEscape("Category deleted"))
}

// GetCategories returns the category list as JSON for AJAX use
func (h *Handler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return c.JSON(categories)
}
