// Package app wires the stores and services shared by the server and the
// operator CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/repository/mongodb"
	"github.com/mamadbah2/canehaul/internal/repository/sheets"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

// App holds the long-lived dependencies of one process.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *mongodb.MongoDBRepository
	Sheets    sheets.Repository // nil when no spreadsheet is configured
	Reporting *reporting.Service
}

// New connects to MongoDB and, when configured, Google Sheets.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		return nil, fmt.Errorf("init mongodb repository: %w", err)
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("init sheets repository: %w", err)
		}
		sheetsRepo = repo
	} else {
		logger.Warn("GOOGLE_SHEET_DATABASE_ID not set, sheets export disabled")
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Sheets:    sheetsRepo,
		Reporting: reporting.NewService(store, sheetsRepo, *cfg, logger.Named("svc.reporting")),
	}, nil
}

// Close releases the MongoDB connection.
func (a *App) Close(ctx context.Context) error {
	if err := a.Store.Close(ctx); err != nil {
		return fmt.Errorf("close mongodb: %w", err)
	}
	return nil
}
