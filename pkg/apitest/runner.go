package apitest

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/cambiomz/metical-converter/pkg/domain"
)

// CustomSuffix keys results of free-form user parameter sets so they
// never collide with catalog test-case keys.
const CustomSuffix = "custom"

// RawCaller is the slice of the exchange client the runner needs: raw
// pass-through calls, no normalization.
type RawCaller interface {
	RawCall(ctx context.Context, method, path string, params map[string]any) domain.RawCallResult
}

// Runner executes catalog entries against the remote service and tracks
// per-test running state and results for the lifetime of the session.
// Result keys are derived deterministically from endpoint id and test
// name, so re-running a key replaces its prior result entirely.
type Runner struct {
	caller   RawCaller
	catalog  *Catalog
	throttle time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	results map[string]domain.RawCallResult
	running map[string]bool
}

// NewRunner creates a Runner over the given catalog. The throttle is the
// fixed inter-test delay RunAll inserts after each completion.
func NewRunner(caller RawCaller, catalog *Catalog, throttle time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		caller:   caller,
		catalog:  catalog,
		throttle: throttle,
		logger:   logger,
		results:  make(map[string]domain.RawCallResult),
		running:  make(map[string]bool),
	}
}

// ResultKey derives the stable identity of a test invocation.
func ResultKey(endpointID, testName string) string {
	return endpointID + "-" + testName
}

// Catalog returns the runner's endpoint catalog.
func (r *Runner) Catalog() *Catalog {
	return r.catalog
}

// RunOne executes a single canned test case and records its result under
// the endpoint id + test name key.
func (r *Runner) RunOne(ctx context.Context, endpointID, testName string) (domain.RawCallResult, error) {
	endpoint, err := r.catalog.Get(endpointID)
	if err != nil {
		return domain.RawCallResult{}, err
	}
	testCase, ok := endpoint.TestCase(testName)
	if !ok {
		return domain.RawCallResult{}, domain.ErrUnknownTestCase
	}
	return r.run(ctx, endpoint, ResultKey(endpointID, testName), testCase.Parameters), nil
}

// RunCustom executes the endpoint with free-form user parameters,
// recording the result under the reserved custom key.
func (r *Runner) RunCustom(ctx context.Context, endpointID string, params map[string]any) (domain.RawCallResult, error) {
	endpoint, err := r.catalog.Get(endpointID)
	if err != nil {
		return domain.RawCallResult{}, err
	}
	return r.run(ctx, endpoint, ResultKey(endpointID, CustomSuffix), params), nil
}

// RunAll executes every test case of the endpoint sequentially, in
// catalog order, waiting the throttle delay after each completion. A
// deliberate crawl, not a burst: the remote service is shared.
func (r *Runner) RunAll(ctx context.Context, endpointID string) error {
	endpoint, err := r.catalog.Get(endpointID)
	if err != nil {
		return err
	}

	for _, testCase := range endpoint.TestCases {
		r.run(ctx, endpoint, ResultKey(endpointID, testCase.Name), testCase.Parameters)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.throttle):
		}
	}
	return nil
}

// run marks the key running, performs the call and records the result.
// The running flag clears regardless of outcome.
func (r *Runner) run(ctx context.Context, endpoint Endpoint, key string, params map[string]any) domain.RawCallResult {
	r.setRunning(key, true)
	defer r.setRunning(key, false)

	result := r.caller.RawCall(ctx, endpoint.Method, endpoint.Path, params)

	r.mu.Lock()
	r.results[key] = result
	r.mu.Unlock()

	r.logger.Info("test executed",
		"key", key, "status", result.Status, "success", result.Success, "duration_ms", result.Duration)
	return result
}

func (r *Runner) setRunning(key string, value bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if value {
		r.running[key] = true
		return
	}
	delete(r.running, key)
}

// Results returns a snapshot of all recorded results, keyed by test
// identity.
func (r *Runner) Results() map[string]domain.RawCallResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.results)
}

// Running returns a snapshot of the per-key running flags.
func (r *Runner) Running() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.running)
}

// IsRunning reports whether the given key currently has a call in flight.
func (r *Runner) IsRunning(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running[key]
}

// Export serializes the accumulated results for download.
func (r *Runner) Export() ([]byte, error) {
	return json.MarshalIndent(r.Results(), "", "  ")
}
