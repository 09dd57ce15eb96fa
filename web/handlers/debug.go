package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/storefront/database"
)

// GetSQLLogs returns the recently executed SQL queries
func GetSQLLogs(c *fiber.Ctx) error {
	queries := database.SQLLogger.GetQueries()
	return c.JSON(fiber.Map{
		"total":   len(queries),
		"queries": queries,
	})
}

// ClearSQLLogs clears the SQL query log
func ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.JSON(fiber.Map{"status": "cleared"})
}
