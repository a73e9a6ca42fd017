package webapi

import (
	"github.com/gofiber/fiber/v2"

	currencysvc "github.com/cambiomz/metical-converter/pkg/service/currency"
)

// CurrencyRoutes registers the currency catalog endpoints.
func CurrencyRoutes(app *fiber.App, svc *currencysvc.Service) {
	group := app.Group("/api/currencies")
	group.Get("/", ListCurrencies(svc))
	group.Get("/search", SearchCurrencies(svc))
	group.Get("/quick-targets", QuickTargets())
}

// ListCurrencies returns the full currency catalog, MZN first.
func ListCurrencies(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := svc.List(c.Context())
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadGateway, "Failed to load currencies", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", currencies)
	}
}

// SearchCurrencies filters the catalog by code or name.
func SearchCurrencies(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := svc.Search(c.Context(), c.Query("q"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadGateway, "Failed to search currencies", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", currencies)
	}
}

// QuickTargets returns the one-tap metical conversion shortcuts.
func QuickTargets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Quick conversion targets", currencysvc.QuickTargets())
	}
}
