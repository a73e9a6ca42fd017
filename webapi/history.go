package webapi

import (
	"github.com/gofiber/fiber/v2"

	historysvc "github.com/cambiomz/metical-converter/pkg/service/history"
)

// HistoryRoutes registers the conversion history endpoints.
func HistoryRoutes(app *fiber.App, store *historysvc.Store) {
	group := app.Group("/api/history")
	group.Get("/", GetHistory(store))
	group.Delete("/", ClearHistory(store))
}

// GetHistory returns past conversions, newest first.
func GetHistory(store *historysvc.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion history", store.List())
	}
}

// ClearHistory wipes the history and its persisted state.
func ClearHistory(store *historysvc.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store.Clear(c.Context())
		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion history cleared", nil)
	}
}
