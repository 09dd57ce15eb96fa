package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storefront/database"
)

// SQLDebugMiddleware injects the SQL queries executed during a request into
// its context so templates and the error page can show them
func SQLDebugMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		beforeCount := len(database.SQLLogger.GetQueries())

		err := c.Next()

		// Queries are stored latest-first, so the request's queries sit at
		// the front of the buffer
		afterQueries := database.SQLLogger.GetQueries()
		requestQueries := []database.QueryLog{}
		if diff := len(afterQueries) - beforeCount; diff > 0 && diff <= len(afterQueries) {
			requestQueries = afterQueries[:diff]
		}

		c.Locals("SQLQueries", requestQueries)
		c.Locals("TotalSQLQueries", len(requestQueries))

		return err
	}
}
