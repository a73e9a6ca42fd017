// Package webapi exposes the converter and the API-test harness over a
// Fiber JSON API.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cambiomz/metical-converter/pkg/apitest"
	"github.com/cambiomz/metical-converter/pkg/config"
	convertsvc "github.com/cambiomz/metical-converter/pkg/service/convert"
	currencysvc "github.com/cambiomz/metical-converter/pkg/service/currency"
	historysvc "github.com/cambiomz/metical-converter/pkg/service/history"
)

// Deps bundles the services the web layer needs. Everything is
// constructed by the composition root and injected here; the handlers
// own no state of their own.
type Deps struct {
	Currency *currencysvc.Service
	Convert  *convertsvc.Orchestrator
	History  *historysvc.Store
	Runner   *apitest.Runner
	Raw      apitest.RawCaller
}

// SetupApp builds the Fiber application with all middleware and routes.
func SetupApp(deps Deps, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "metical-converter",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Metical Converter is up 🇲🇿")
	})

	CurrencyRoutes(app, deps.Currency)
	ConvertRoutes(app, deps.Convert)
	HistoryRoutes(app, deps.History)
	RateRoutes(app, deps.Raw)
	TesterRoutes(app, deps.Runner)

	return app
}
