// Package currency exposes the remote currency catalog to the rest of
// the application.
package currency

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/cambiomz/metical-converter/pkg/domain"
)

// MeticalCode is the home currency; it always sorts first so the picker
// leads with it.
const MeticalCode = "MZN"

// Lister is the slice of the exchange client the catalog needs.
type Lister interface {
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// Service loads the currency catalog once per session and serves it from
// memory afterwards. A failed load is retried on the next call.
type Service struct {
	client Lister
	logger *slog.Logger

	mu         sync.RWMutex
	currencies []domain.Currency
	loaded     bool
}

// New creates a catalog service backed by the given client.
func New(client Lister, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// List returns the sorted currency catalog, fetching it from the remote
// service on first use.
func (s *Service) List(ctx context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	if s.loaded {
		out := make([]domain.Currency, len(s.currencies))
		copy(out, s.currencies)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	currencies, err := s.client.ListCurrencies(ctx)
	if err != nil {
		s.logger.Error("failed to load currencies", "error", err)
		return nil, err
	}
	sortCurrencies(currencies)

	s.mu.Lock()
	s.currencies = currencies
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("currency catalog loaded", "count", len(currencies))
	out := make([]domain.Currency, len(currencies))
	copy(out, currencies)
	return out, nil
}

// Search filters the catalog by code or name, case-insensitively. Used by
// the picker's search box.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Currency, error) {
	currencies, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return currencies, nil
	}

	matches := make([]domain.Currency, 0, len(currencies))
	for _, c := range currencies {
		if strings.Contains(strings.ToLower(c.Code), query) ||
			strings.Contains(strings.ToLower(c.Name), query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// Get looks up a single currency by code.
func (s *Service) Get(ctx context.Context, code string) (domain.Currency, bool, error) {
	currencies, err := s.List(ctx)
	if err != nil {
		return domain.Currency{}, false, err
	}
	for _, c := range currencies {
		if strings.EqualFold(c.Code, code) {
			return c, true, nil
		}
	}
	return domain.Currency{}, false, nil
}

// QuickTargets lists the common metical conversion targets shown as
// one-tap shortcuts.
func QuickTargets() []string {
	return []string{"USD", "EUR", "ZAR", "GBP"}
}

// sortCurrencies orders MZN first, then by code.
func sortCurrencies(currencies []domain.Currency) {
	sort.SliceStable(currencies, func(i, j int) bool {
		if currencies[i].Code == MeticalCode {
			return currencies[j].Code != MeticalCode
		}
		if currencies[j].Code == MeticalCode {
			return false
		}
		return currencies[i].Code < currencies[j].Code
	})
}
