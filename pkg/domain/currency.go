package domain

import "time"

// Currency is one entry of the remote service's currency catalog.
// The set of known currencies is fetched once per session and never
// mutated afterwards.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// ExchangeInfo carries descriptive metadata about the rate source. It is
// an opaque pass-through from the remote service; nothing in this codebase
// interprets its fields.
type ExchangeInfo struct {
	BaseCurrency string `json:"baseCurrency"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	LastUpdate   string `json:"lastUpdate"`
}

// ConversionResult is the normalized outcome of one successful quote call.
// It is derived entirely from the remote response and never mutated after
// construction.
type ConversionResult struct {
	Rate          float64       `json:"rate"`
	Result        float64       `json:"result"`
	ExchangeInfo  *ExchangeInfo `json:"exchangeInfo,omitempty"`
	OperationType string        `json:"operationType,omitempty"`
}

// ConversionHistoryEntry records one completed conversion. Entries are
// immutable once appended; the history collection is replaced as a whole
// on every mutation.
type ConversionHistoryEntry struct {
	ID        string    `json:"id"`
	From      Currency  `json:"from"`
	To        Currency  `json:"to"`
	Amount    float64   `json:"amount"`
	Result    float64   `json:"result"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}

// RawCallResult captures the outcome of one raw endpoint invocation made
// by the test harness. Success is determined purely by HTTP status; the
// harness records schema-invalid bodies as-is. Duration is wall-clock
// milliseconds from call start to settled response.
type RawCallResult struct {
	Success   bool      `json:"success"`
	Status    int       `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int64     `json:"duration"`
}
