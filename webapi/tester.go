package webapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cambiomz/metical-converter/pkg/apitest"
	"github.com/cambiomz/metical-converter/pkg/domain"
)

// RunTestRequest selects one canned test case.
type RunTestRequest struct {
	EndpointID string `json:"endpoint_id" validate:"required"`
	TestCase   string `json:"test_case" validate:"required"`
}

// RunAllRequest selects an endpoint whose whole test suite should run.
type RunAllRequest struct {
	EndpointID string `json:"endpoint_id" validate:"required"`
}

// RunCustomRequest carries free-form user parameters for an endpoint.
type RunCustomRequest struct {
	EndpointID string         `json:"endpoint_id" validate:"required"`
	Parameters map[string]any `json:"parameters"`
}

// TesterRoutes registers the API-testing panel endpoints.
func TesterRoutes(app *fiber.App, runner *apitest.Runner) {
	group := app.Group("/api/tester")
	group.Get("/endpoints", ListEndpoints(runner))
	group.Post("/run", RunTest(runner))
	group.Post("/run-all", RunAllTests(runner))
	group.Post("/custom", RunCustomTest(runner))
	group.Get("/results", GetTestResults(runner))
	group.Get("/results/export", ExportTestResults(runner))
}

// ListEndpoints returns the static endpoint catalog.
func ListEndpoints(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Endpoint catalog", runner.Catalog().Endpoints())
	}
}

// RunTest executes one canned test case and returns its recorded result.
func RunTest(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[RunTestRequest](c)
		if err != nil {
			return nil
		}
		result, err := runner.RunOne(c.Context(), req.EndpointID, req.TestCase)
		if err != nil {
			return testerErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Test executed", result)
	}
}

// RunAllTests starts a sequential, throttled run of the endpoint's whole
// suite in the background and returns immediately; results appear in the
// result map as each test settles.
func RunAllTests(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[RunAllRequest](c)
		if err != nil {
			return nil
		}
		if _, err := runner.Catalog().Get(req.EndpointID); err != nil {
			return testerErrorJSON(c, err)
		}

		// Detached from the request: the run outlives the HTTP exchange.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			_ = runner.RunAll(ctx, req.EndpointID)
		}()

		return SuccessResponseJSON(c, fiber.StatusAccepted, "Test run started", fiber.Map{
			"endpoint_id": req.EndpointID,
		})
	}
}

// RunCustomTest executes an endpoint with user-supplied parameters under
// the reserved custom key.
func RunCustomTest(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[RunCustomRequest](c)
		if err != nil {
			return nil
		}
		result, err := runner.RunCustom(c.Context(), req.EndpointID, req.Parameters)
		if err != nil {
			return testerErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Custom test executed", result)
	}
}

// GetTestResults returns accumulated results plus running flags,
// optionally filtered to one endpoint.
func GetTestResults(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		results := runner.Results()
		if endpointID := c.Query("endpoint_id"); endpointID != "" {
			prefix := endpointID + "-"
			for key := range results {
				if !strings.HasPrefix(key, prefix) {
					delete(results, key)
				}
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Test results", fiber.Map{
			"results": results,
			"running": runner.Running(),
		})
	}
}

// ExportTestResults serves the accumulated result map as a downloadable
// JSON attachment.
func ExportTestResults(runner *apitest.Runner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, err := runner.Export()
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to export results", err.Error())
		}
		filename := fmt.Sprintf("api-test-results-%d.json", time.Now().Unix())
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}
}

func testerErrorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownEndpoint):
		return ErrorResponseJSON(c, fiber.StatusNotFound, "Unknown endpoint", err.Error())
	case errors.Is(err, domain.ErrUnknownTestCase):
		return ErrorResponseJSON(c, fiber.StatusNotFound, "Unknown test case", err.Error())
	default:
		return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Test execution failed", err.Error())
	}
}
