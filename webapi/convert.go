package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cambiomz/metical-converter/pkg/domain"
	convertsvc "github.com/cambiomz/metical-converter/pkg/service/convert"
)

// ConversionInputRequest is one input-change event from the form. Amount
// is the raw field value; the orchestrator decides whether it triggers a
// conversion.
type ConversionInputRequest struct {
	FromCode string `json:"from_code" validate:"required,alpha,len=3"`
	FromName string `json:"from_name"`
	ToCode   string `json:"to_code" validate:"required,alpha,len=3"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

func (r *ConversionInputRequest) toInput() convertsvc.Input {
	return convertsvc.Input{
		From:   domain.Currency{Code: r.FromCode, Name: r.FromName},
		To:     domain.Currency{Code: r.ToCode, Name: r.ToName},
		Amount: r.Amount,
	}
}

// ConvertRoutes registers the conversion pipeline endpoints.
func ConvertRoutes(app *fiber.App, orch *convertsvc.Orchestrator) {
	group := app.Group("/api/convert")
	group.Get("/", GetConversion(orch))
	group.Post("/", SubmitConversionInput(orch))
	group.Post("/refresh", RefreshConversion(orch))
}

// SubmitConversionInput feeds one input change into the debounced
// pipeline and echoes the resulting state. The actual quote resolves
// asynchronously once the debounce window elapses.
func SubmitConversionInput(orch *convertsvc.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[ConversionInputRequest](c)
		if err != nil {
			return nil
		}
		snapshot := orch.Submit(req.toInput())
		return SuccessResponseJSON(c, fiber.StatusAccepted, "Conversion input accepted", snapshot)
	}
}

// GetConversion returns the orchestrator's current snapshot for display.
func GetConversion(orch *convertsvc.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion state", orch.Snapshot())
	}
}

// RefreshConversion re-runs the current inputs immediately, skipping the
// debounce window.
func RefreshConversion(orch *convertsvc.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Conversion refreshed", orch.Refresh())
	}
}
