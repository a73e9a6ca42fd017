// Package initializer is the composition root: it constructs every
// service with its dependencies injected explicitly. Nothing in this
// codebase reaches for ambient singletons.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cambiomz/metical-converter/infra/exchange"
	kvstore "github.com/cambiomz/metical-converter/infra/kv"
	"github.com/cambiomz/metical-converter/pkg/apitest"
	"github.com/cambiomz/metical-converter/pkg/config"
	"github.com/cambiomz/metical-converter/pkg/kv"
	convertsvc "github.com/cambiomz/metical-converter/pkg/service/convert"
	currencysvc "github.com/cambiomz/metical-converter/pkg/service/currency"
	historysvc "github.com/cambiomz/metical-converter/pkg/service/history"
)

// Deps holds every constructed service, ready for the web layer.
type Deps struct {
	Logger   *slog.Logger
	Exchange *exchange.Client
	Currency *currencysvc.Service
	History  *historysvc.Store
	Convert  *convertsvc.Orchestrator
	Runner   *apitest.Runner
}

// InitializeDependencies wires the whole object graph from config.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	store, err := newHistoryStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history storage: %w", err)
	}

	client := exchange.New(cfg.Exchange, logger)

	history := historysvc.New(store, cfg.History, logger)
	history.Load(context.Background())

	return &Deps{
		Logger:   logger,
		Exchange: client,
		Currency: currencysvc.New(client, logger),
		History:  history,
		Convert:  convertsvc.New(client, history, cfg.Convert.DebounceDelay, logger),
		Runner:   apitest.NewRunner(client, apitest.DefaultCatalog(), cfg.Tester.Throttle, logger),
	}, nil
}

// newHistoryStore picks the key-value backend: Redis when configured,
// plain files otherwise.
func newHistoryStore(cfg *config.App, logger *slog.Logger) (kv.Store, error) {
	if cfg.History.RedisURL != "" {
		logger.Info("using redis history backend")
		return kvstore.NewRedisStore(cfg.History.RedisURL, logger)
	}
	logger.Info("using file history backend", "dir", cfg.History.Dir)
	return kvstore.NewFileStore(cfg.History.Dir)
}
