package web

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"github.com/storefront/web/handlers"
	"github.com/storefront/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server wired to the given handlers
func NewServer(h *handlers.Handler) *Server {
	// Initialize template engine
	engine := html.New("./web/templates", ".html")
	engine.Reload(true) // Enable hot reload for development

	// Custom template functions
	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	})
	engine.AddFunc("formatPrice", func(p decimal.Decimal) string {
		return p.StringFixed(2)
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// Create Fiber app with template engine
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/base",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)

			// API requests get JSON errors
			if c.Get("Content-Type") == "application/json" {
				return c.Status(code).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			return c.Status(code).Render("pages/error", fiber.Map{
				"Title":           "Error",
				"Error":           err.Error(),
				"Code":            code,
				"SQLQueries":      c.Locals("SQLQueries"),
				"TotalSQLQueries": c.Locals("TotalSQLQueries"),
			})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	// Inject SQL logs into request context
	app.Use(middleware.SQLDebugMiddleware())

	// Method override middleware for HTML forms
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == "POST" {
			method := c.FormValue("_method")
			if method != "" {
				c.Method(method)
			}
		}
		return c.Next()
	})

	// Static files
	app.Static("/static", "./web/static")

	setupRoutes(app, h)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Printf("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the Fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, h *handlers.Handler) {
	// Product listing with search and category filter
	app.Get("/", h.ProductList)

	// Product management - /product/new must come before /product/:id
	app.Get("/product/new", h.ProductNew)
	app.Post("/product", h.ProductCreate)
	app.Get("/product/:id", h.ProductDetail)
	app.Get("/product/:id/edit", h.ProductEdit)
	app.Post("/product/:id", h.ProductUpdate)
	app.Post("/product/:id/delete", h.ProductDelete)

	// Bulk price adjustments
	app.Post("/products/price-action", h.ProductPriceAction)

	// Category management
	app.Get("/categories/new", h.CategoryNew)
	app.Post("/categories", h.CategoryCreate)
	app.Get("/category/:id", h.CategoryDetail)
	app.Post("/category/:id/delete", h.CategoryDelete)

	// API endpoints for AJAX operations
	app.Get("/api/categories", h.GetCategories)

	// Debug endpoint for SQL logs
	app.Get("/api/debug/sql", handlers.GetSQLLogs)
	app.Delete("/api/debug/sql", handlers.ClearSQLLogs)
}
