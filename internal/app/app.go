package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/factdrill/internal/config"
	"github.com/aliskhannn/factdrill/internal/delivery/rest"
	"github.com/aliskhannn/factdrill/internal/service"
)

// App holds the services of a running instance.
type App struct {
	Stores   *Stores
	Catalog  *service.FactCatalog
	Selector *service.ProblemSelector
	Recorder *service.AttemptRecorder
	Reporter *service.ProgressReporter
}

// New opens the configured stores, seeds the fact table and builds the
// services on top of them.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	stores, err := OpenStores(ctx, cfg.DB, cfg.Facts.MaxOperand)
	if err != nil {
		return nil, err
	}

	catalog := service.NewFactCatalog(stores.Facts)
	count, err := catalog.EnsureSeeded(ctx)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("seed facts: %w", err)
	}
	log.Info("fact store ready",
		zap.String("driver", cfg.DB.Driver),
		zap.Int("facts", count),
	)

	return &App{
		Stores:   stores,
		Catalog:  catalog,
		Selector: service.NewProblemSelector(stores.Facts),
		Recorder: service.NewAttemptRecorder(stores.Progress),
		Reporter: service.NewProgressReporter(stores.Progress),
	}, nil
}

// Handler builds the HTTP API for the app.
func (a *App) Handler(cfg *config.Config, log *zap.Logger) *rest.Handler {
	return rest.NewHandler(
		log,
		a.Selector,
		a.Recorder,
		a.Reporter,
		a.Catalog,
		rest.Options{DefaultMasteryThreshold: cfg.Mastery.DefaultThreshold},
	)
}

// Close releases the app's resources.
func (a *App) Close() {
	a.Stores.Close()
}
