package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cambiomz/metical-converter/infra/initializer"
	"github.com/cambiomz/metical-converter/pkg/config"
	"github.com/cambiomz/metical-converter/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.SetupApp(webapi.Deps{
		Currency: deps.Currency,
		Convert:  deps.Convert,
		History:  deps.History,
		Runner:   deps.Runner,
		Raw:      deps.Exchange,
	}, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return app.Listen(addr)
}
