package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/app"
	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/scheduler"
	"github.com/mamadbah2/canehaul/internal/server/handlers"
	"github.com/mamadbah2/canehaul/internal/server/router"
	commandsvc "github.com/mamadbah2/canehaul/internal/service/commands"
	livesyncsvc "github.com/mamadbah2/canehaul/internal/service/livesync"
	whatsappsvc "github.com/mamadbah2/canehaul/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/canehaul/pkg/clients/whatsapp"
	"github.com/mamadbah2/canehaul/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancelBoot := context.WithTimeout(ctx, 30*time.Second)
	application, err := app.New(bootCtx, cfg, baseLogger)
	cancelBoot()
	if err != nil {
		baseLogger.Fatal("failed to initialize", zap.Error(err))
	}
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportingSvc := application.Reporting
	commandDispatcher := commandsvc.NewService(reportingSvc, baseLogger.Named("svc.commands"))

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("WHATSAPP_TOKEN not set, replies and notifications disabled")
	}
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))

	store := application.Store
	recordsLogger := baseLogger.Named("handlers.records")
	engine := router.New(router.Handlers{
		Webhook:   handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp")),
		Summaries: handlers.NewSummaryHandler(reportingSvc, baseLogger.Named("handlers.summaries")),
		Reports:   handlers.NewReportsHandler(store, baseLogger.Named("handlers.reports")),
		Records: map[string]router.RecordRoutes{
			"employees":    handlers.NewRecordHandler[models.Employee, *models.Employee](store.Employees, recordsLogger),
			"groups":       handlers.NewRecordHandler[models.Group, *models.Group](store.Groups, recordsLogger),
			"drivers":      handlers.NewRecordHandler[models.Driver, *models.Driver](store.Drivers, recordsLogger),
			"travels":      handlers.NewRecordHandler[models.Travel, *models.Travel](store.Travels, recordsLogger),
			"debts":        handlers.NewRecordHandler[models.Debt, *models.Debt](store.Debts, recordsLogger),
			"lands":        handlers.NewRecordHandler[models.Land, *models.Land](store.Lands, recordsLogger),
			"plates":       handlers.NewRecordHandler[models.Plate, *models.Plate](store.Plates, recordsLogger),
			"destinations": handlers.NewRecordHandler[models.Destination, *models.Destination](store.Destinations, recordsLogger),
		},
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if cfg.Sheets.Enabled() && cfg.Sheets.LiveSync {
		liveSync := livesyncsvc.NewService(store, reportingSvc, livesyncsvc.DefaultQuietPeriod, baseLogger.Named("svc.livesync"))
		go func() {
			if err := liveSync.Run(ctx); err != nil {
				baseLogger.Error("live sync stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
