// Package exchange wraps HTTP access to the metical-converter service.
// All defensive decoding of the service's nested response shapes lives
// here; callers receive typed results or a decode failure.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cambiomz/metical-converter/pkg/config"
	"github.com/cambiomz/metical-converter/pkg/domain"
)

// Client talks to the remote quoting/listing endpoints. It performs no
// caching and no retries; every conversion requires a live round trip.
type Client struct {
	baseURL    string
	rawBaseURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client from config. The base URL is the versioned API
// root; the raw base is the bare host used by the test harness.
func New(cfg *config.Exchange, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		rawBaseURL: cfg.RawBaseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

type currencyItem struct {
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

// currencyListEnvelope mirrors {data: [{currency, name}, ...]}. The
// pointer distinguishes a missing array from an empty one; absence is a
// hard failure.
type currencyListEnvelope struct {
	Data *[]currencyItem `json:"data"`
}

// quoteEnvelope mirrors {data: {conversion: {...}, exchangeInfo: {...}}}.
type quoteEnvelope struct {
	Data *struct {
		Conversion *struct {
			ExchangeRate  float64 `json:"exchangeRate"`
			OutputAmount  float64 `json:"outputAmount"`
			OperationType string  `json:"operationType"`
		} `json:"conversion"`
		ExchangeInfo *domain.ExchangeInfo `json:"exchangeInfo"`
	} `json:"data"`
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("service returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListCurrencies fetches the set of supported currencies, preserving the
// service's ordering. A response without the expected array is a hard
// failure, never an empty list.
func (c *Client) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var envelope currencyListEnvelope
	if err := c.get(ctx, "/currencies", &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, domain.ErrCurrencyListMissing
	}

	currencies := make([]domain.Currency, 0, len(*envelope.Data))
	for _, item := range *envelope.Data {
		currencies = append(currencies, domain.Currency{
			Code: item.Currency,
			Name: item.Name,
		})
	}
	c.logger.Debug("currencies fetched", "count", len(currencies))
	return currencies, nil
}

// Quote converts amount between two currencies. It returns (nil, nil)
// when the response is well-formed but lacks the expected conversion or
// exchangeInfo fields; an error is returned only on transport or parse
// failure.
func (c *Client) Quote(ctx context.Context, from, to string, amount float64) (*domain.ConversionResult, error) {
	endpoint := fmt.Sprintf("/exchange/quote?from=%s&to=%s&amount=%s",
		url.QueryEscape(from),
		url.QueryEscape(to),
		strconv.FormatFloat(amount, 'f', -1, 64),
	)

	var envelope quoteEnvelope
	if err := c.get(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil || envelope.Data.Conversion == nil || envelope.Data.ExchangeInfo == nil {
		c.logger.Warn("quote response missing conversion fields", "from", from, "to", to)
		return nil, nil
	}

	conversion := envelope.Data.Conversion
	return &domain.ConversionResult{
		Rate:          conversion.ExchangeRate,
		Result:        conversion.OutputAmount,
		ExchangeInfo:  envelope.Data.ExchangeInfo,
		OperationType: conversion.OperationType,
	}, nil
}
