package apitest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cambiomz/metical-converter/pkg/domain"
)

type rawCall struct {
	Method string
	Path   string
	Params map[string]any
}

// fakeCaller records every raw call and answers via a configurable
// function.
type fakeCaller struct {
	mu    sync.Mutex
	calls []rawCall
	fn    func(call rawCall) domain.RawCallResult
}

func (f *fakeCaller) RawCall(ctx context.Context, method, path string, params map[string]any) domain.RawCallResult {
	call := rawCall{Method: method, Path: path, Params: params}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return domain.RawCallResult{Success: true, Status: 200, Timestamp: time.Now(), Duration: 1}
	}
	return fn(call)
}

func (f *fakeCaller) recorded() []rawCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]rawCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func newTestRunner(caller *fakeCaller) *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(caller, DefaultCatalog(), time.Millisecond, logger)
}

func TestResultKey(t *testing.T) {
	assert.Equal(t, "exchange-quote-USD para MZN", ResultKey("exchange-quote", "USD para MZN"))
	assert.Equal(t, "exchange-quote-custom", ResultKey("exchange-quote", CustomSuffix))
}

func TestRunOne_RecordsResultUnderTestKey(t *testing.T) {
	caller := &fakeCaller{}
	runner := newTestRunner(caller)

	result, err := runner.RunOne(context.Background(), "exchange-quote", "USD para MZN")
	require.NoError(t, err)
	assert.True(t, result.Success)

	calls := caller.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Equal(t, "/api/v1/exchange/quote", calls[0].Path)
	assert.Equal(t, map[string]any{"from": "USD", "to": "MZN", "amount": 100}, calls[0].Params)

	results := runner.Results()
	require.Contains(t, results, "exchange-quote-USD para MZN")
}

func TestRunOne_UnknownEndpointAndTestCase(t *testing.T) {
	runner := newTestRunner(&fakeCaller{})

	_, err := runner.RunOne(context.Background(), "missing", "USD para MZN")
	assert.ErrorIs(t, err, domain.ErrUnknownEndpoint)

	_, err = runner.RunOne(context.Background(), "exchange-quote", "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownTestCase)
}

func TestRunCustom_KeyedSeparatelyFromCannedCases(t *testing.T) {
	caller := &fakeCaller{}
	runner := newTestRunner(caller)
	ctx := context.Background()

	_, err := runner.RunOne(ctx, "exchange-quote", "USD para MZN")
	require.NoError(t, err)
	_, err = runner.RunCustom(ctx, "exchange-quote", map[string]any{"from": "ZAR", "to": "MZN", "amount": 7})
	require.NoError(t, err)

	results := runner.Results()
	assert.Contains(t, results, "exchange-quote-USD para MZN")
	assert.Contains(t, results, "exchange-quote-custom")
	assert.Len(t, results, 2)
}

func TestRun_ReRunReplacesPriorResult(t *testing.T) {
	caller := &fakeCaller{}
	status := 500
	caller.fn = func(rawCall) domain.RawCallResult {
		return domain.RawCallResult{Success: status < 400, Status: status, Timestamp: time.Now()}
	}
	runner := newTestRunner(caller)
	ctx := context.Background()

	_, err := runner.RunOne(ctx, "get-currencies", "Listar todas as moedas")
	require.NoError(t, err)
	require.False(t, runner.Results()["get-currencies-Listar todas as moedas"].Success)

	status = 200
	_, err = runner.RunOne(ctx, "get-currencies", "Listar todas as moedas")
	require.NoError(t, err)

	results := runner.Results()
	assert.Len(t, results, 1)
	assert.True(t, results["get-currencies-Listar todas as moedas"].Success)
}

func TestRunAll_SequentialInCatalogOrder(t *testing.T) {
	caller := &fakeCaller{}
	var inFlight, maxInFlight int
	var mu sync.Mutex
	caller.fn = func(rawCall) domain.RawCallResult {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return domain.RawCallResult{Success: true, Status: 200, Timestamp: time.Now()}
	}
	runner := newTestRunner(caller)

	require.NoError(t, runner.RunAll(context.Background(), "exchange-quote"))

	calls := caller.recorded()
	require.Len(t, calls, 6)
	assert.Equal(t, 1, maxInFlight)

	endpoint, err := runner.Catalog().Get("exchange-quote")
	require.NoError(t, err)
	for i, tc := range endpoint.TestCases {
		assert.Equal(t, tc.Parameters, calls[i].Params)
	}
	assert.Len(t, runner.Results(), 6)
}

func TestRunAll_CancelledContextStopsEarly(t *testing.T) {
	caller := &fakeCaller{}
	runner := newTestRunner(caller)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.RunAll(ctx, "exchange-quote")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, caller.recorded(), 1)
}

func TestRunAll_UnknownEndpoint(t *testing.T) {
	runner := newTestRunner(&fakeCaller{})
	err := runner.RunAll(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownEndpoint)
}

func TestRunningFlagClearsAfterFailure(t *testing.T) {
	caller := &fakeCaller{fn: func(rawCall) domain.RawCallResult {
		return domain.RawCallResult{Success: false, Status: 0, Error: "connection refused", Timestamp: time.Now()}
	}}
	runner := newTestRunner(caller)

	result, err := runner.RunOne(context.Background(), "get-currencies", "Listar todas as moedas")
	require.NoError(t, err)
	assert.False(t, result.Success)

	assert.Empty(t, runner.Running())
	assert.False(t, runner.IsRunning("get-currencies-Listar todas as moedas"))
}

func TestRunningFlagVisibleDuringCall(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	caller := &fakeCaller{fn: func(rawCall) domain.RawCallResult {
		close(started)
		<-release
		return domain.RawCallResult{Success: true, Status: 200, Timestamp: time.Now()}
	}}
	runner := newTestRunner(caller)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = runner.RunOne(context.Background(), "exchange-rates", "Todas as taxas")
	}()

	<-started
	assert.True(t, runner.IsRunning("exchange-rates-Todas as taxas"))
	close(release)
	<-done
	assert.False(t, runner.IsRunning("exchange-rates-Todas as taxas"))
}

func TestExport_RoundTrips(t *testing.T) {
	runner := newTestRunner(&fakeCaller{})

	_, err := runner.RunOne(context.Background(), "exchange-quote", "EUR para MZN")
	require.NoError(t, err)

	blob, err := runner.Export()
	require.NoError(t, err)

	var decoded map[string]domain.RawCallResult
	require.NoError(t, json.Unmarshal(blob, &decoded))
	assert.Contains(t, decoded, "exchange-quote-EUR para MZN")
}
