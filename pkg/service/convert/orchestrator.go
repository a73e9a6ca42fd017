// Package convert drives the conversion request pipeline: debounced
// input, remote quote, normalized result, history append.
package convert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cambiomz/metical-converter/pkg/domain"
)

// State names one phase of the conversion pipeline.
type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateRequesting State = "requesting"
	StateResolved   State = "resolved"
	StateFailed     State = "failed"
)

// User-facing failure messages. Transport failures and semantically empty
// responses both land in StateFailed; only the message differs.
const (
	msgServiceNoData = "conversion failed: the service returned no data"
	msgNetwork       = "conversion request failed: check your internet connection"
)

// Input is one set of conversion inputs as entered by the user. Amount is
// the raw field value; validation happens inside Submit.
type Input struct {
	From   domain.Currency `json:"from"`
	To     domain.Currency `json:"to"`
	Amount string          `json:"amount"`
}

// Swapped returns the input with source and target exchanged.
func (in Input) Swapped() Input {
	in.From, in.To = in.To, in.From
	return in
}

// Snapshot is a fully-formed view of the orchestrator's state, safe to
// hand out for display.
type Snapshot struct {
	State  State                    `json:"state"`
	Input  Input                    `json:"input"`
	Result *domain.ConversionResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// Quoter is the slice of the exchange client the orchestrator needs.
type Quoter interface {
	Quote(ctx context.Context, from, to string, amount float64) (*domain.ConversionResult, error)
}

// Recorder receives the history entry of each successful conversion.
type Recorder interface {
	Append(ctx context.Context, entry domain.ConversionHistoryEntry)
}

// Orchestrator owns the Idle → Debouncing → Requesting → Resolved|Failed
// state machine. Every triggering change restarts a trailing-edge
// debounce timer; a monotonically increasing generation counter, checked
// at commit time, guarantees that only the most recently triggered cycle
// may publish its outcome. Late resolutions of superseded cycles are
// discarded.
type Orchestrator struct {
	quoter  Quoter
	history Recorder
	delay   time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
	snap  Snapshot
}

// New creates an Orchestrator with the given trailing-edge debounce
// delay.
func New(quoter Quoter, history Recorder, delay time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		quoter:  quoter,
		history: history,
		delay:   delay,
		logger:  logger,
		snap:    Snapshot{State: StateIdle},
	}
}

// Submit registers a change to amount, source or target currency. A valid
// strictly-positive amount (re)starts the debounce; anything else abandons
// whatever is pending and returns the machine to Idle with no displayed
// result.
func (o *Orchestrator) Submit(in Input) Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	// Invalidate any pending timer and any in-flight request.
	o.gen++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}

	amount, ok := ParseAmount(in.Amount)
	if !ok {
		o.snap = Snapshot{State: StateIdle, Input: in}
		return o.snap
	}

	o.snap = Snapshot{State: StateDebouncing, Input: in, Result: o.snap.Result}
	gen := o.gen
	o.timer = time.AfterFunc(o.delay, func() {
		o.fire(gen, in, amount)
	})
	return o.snap
}

// Refresh re-runs the current inputs immediately, skipping the debounce.
// No-op unless the current amount is valid.
func (o *Orchestrator) Refresh() Snapshot {
	o.mu.Lock()
	in := o.snap.Input
	amount, ok := ParseAmount(in.Amount)
	if !ok {
		o.mu.Unlock()
		return o.Snapshot()
	}
	o.gen++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	gen := o.gen
	o.mu.Unlock()

	o.fire(gen, in, amount)
	return o.Snapshot()
}

// Snapshot returns the current state for display.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// Close cancels any pending debounce.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// fire runs one debounced cycle: transition to Requesting, call the
// quoter, and commit the outcome if this cycle is still the latest.
func (o *Orchestrator) fire(gen uint64, in Input, amount float64) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.snap.State = StateRequesting
	o.mu.Unlock()

	ctx := context.Background()
	result, err := o.quoter.Quote(ctx, in.From.Code, in.To.Code, amount)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		// A newer cycle started while this one was in flight.
		o.logger.Debug("discarding stale conversion result",
			"from", in.From.Code, "to", in.To.Code, "amount", amount)
		return
	}

	switch {
	case err != nil:
		o.logger.Warn("conversion request failed",
			"from", in.From.Code, "to", in.To.Code, "error", err)
		o.snap = Snapshot{State: StateFailed, Input: in, Error: msgNetwork}
	case result == nil:
		o.snap = Snapshot{State: StateFailed, Input: in, Error: msgServiceNoData}
	default:
		o.snap = Snapshot{State: StateResolved, Input: in, Result: result}
		o.history.Append(ctx, domain.ConversionHistoryEntry{
			ID:        uuid.NewString(),
			From:      in.From,
			To:        in.To,
			Amount:    amount,
			Result:    result.Result,
			Rate:      result.Rate,
			Timestamp: time.Now().UTC(),
		})
	}
}
