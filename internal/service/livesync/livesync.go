// Package livesync re-exports the spreadsheet summaries whenever records
// change in the store.
package livesync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/repository/mongodb"
)

// DefaultQuietPeriod is how long the store must stay quiet before an export.
const DefaultQuietPeriod = 5 * time.Second

const exportTimeout = 2 * time.Minute

// Watcher streams store changes until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, fn func(mongodb.ChangeEvent)) error
}

// Exporter rewrites the summary tabs.
type Exporter interface {
	ExportSheets(ctx context.Context) error
}

// Service coalesces bursts of changes into one export.
type Service struct {
	watcher  Watcher
	exporter Exporter
	quiet    time.Duration
	logger   *zap.Logger
}

// NewService wires a live sync service. quiet <= 0 selects DefaultQuietPeriod.
func NewService(watcher Watcher, exporter Exporter, quiet time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Service{
		watcher:  watcher,
		exporter: exporter,
		quiet:    quiet,
		logger:   logger,
	}
}

// Run blocks until ctx is done or the change stream fails.
func (s *Service) Run(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(ctx)
	pending := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		s.exportLoop(loopCtx, pending)
	}()

	s.logger.Info("live sync started", zap.Duration("quiet_period", s.quiet))
	err := s.watcher.Watch(ctx, func(ev mongodb.ChangeEvent) {
		s.logger.Debug("store changed",
			zap.String("collection", ev.Namespace.Collection),
			zap.String("operation", ev.OperationType),
			zap.String("id", ev.DocumentKey.ID))
		select {
		case pending <- struct{}{}:
		default:
		}
	})

	cancel()
	<-done
	s.logger.Info("live sync stopped")
	return err
}

func (s *Service) exportLoop(ctx context.Context, pending <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-pending:
		}

		timer := time.NewTimer(s.quiet)
	wait:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-pending:
				timer.Reset(s.quiet)
			case <-timer.C:
				break wait
			}
		}

		s.export(ctx)
	}
}

func (s *Service) export(ctx context.Context) {
	exportCtx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	if err := s.exporter.ExportSheets(exportCtx); err != nil {
		s.logger.Error("live sync export failed", zap.Error(err))
		return
	}
	s.logger.Debug("live sync export done")
}
