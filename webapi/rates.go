package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cambiomz/metical-converter/pkg/apitest"
)

// RateRoutes registers the pass-through exchange-rate endpoints. These
// proxy the remote service without normalization; whatever shape comes
// back is handed to the caller as-is.
func RateRoutes(app *fiber.App, raw apitest.RawCaller) {
	group := app.Group("/api/rates")
	group.Get("/", GetRates(raw))
	group.Get("/:currency", GetRatesByCurrency(raw))
}

// GetRates returns the full rate table.
func GetRates(raw apitest.RawCaller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := raw.RawCall(c.Context(), fiber.MethodGet, "/api/v1/exchange-rates", nil)
		if !result.Success {
			return ErrorResponseJSON(c, fiber.StatusBadGateway, "Failed to fetch exchange rates", result.Error)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Exchange rates fetched successfully", result.Data)
	}
}

// GetRatesByCurrency returns the rates for a single currency.
func GetRatesByCurrency(raw apitest.RawCaller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := raw.RawCall(c.Context(), fiber.MethodGet, "/api/v1/exchange-rates/{currency}",
			map[string]any{"currency": c.Params("currency")})
		if !result.Success {
			return ErrorResponseJSON(c, fiber.StatusBadGateway, "Failed to fetch exchange rates", result.Error)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Exchange rates fetched successfully", result.Data)
	}
}
