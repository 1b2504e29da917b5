package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/config"
	"github.com/lucasnevarez/turnos/internal/localstore"
	"github.com/lucasnevarez/turnos/internal/remote"
	"github.com/lucasnevarez/turnos/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	app := ui.NewApp(src, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}

// openSource picks the remote API when one is configured and falls back
// to the local SQLite store for offline and demo use.
func openSource(cfg *config.Config) (appointment.Source, error) {
	if cfg.API.BaseURL != "" {
		timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
		return remote.New(cfg.API.BaseURL, cfg.API.Token, timeout)
	}
	store, err := localstore.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	return store, nil
}
