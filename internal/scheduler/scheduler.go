package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
	"github.com/mamadbah2/canehaul/internal/service/whatsapp"
)

const jobTimeout = 2 * time.Minute

// Reporter produces and stores the weekly payroll report.
type Reporter interface {
	SaveWeeklyReport(ctx context.Context, now time.Time) (models.SummaryReport, error)
	ExportSheets(ctx context.Context) error
}

// Notifier delivers the weekly summary to the manager.
type Notifier interface {
	NotifyManager(ctx context.Context, body string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reporter Reporter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. Schedules use the standard
// five-field cron syntax evaluated in the reporting timezone.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(cfg.Location())),
		schedule: cfg.CronSchedule,
		reporter: reporter,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the weekly job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", s.schedule), zap.Time("next_run", s.NextRun()))
	return nil
}

// NextRun returns the next activation of the weekly job, or the zero time
// before Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(s.now())
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunWeeklyReport(ctx); err != nil {
		s.logger.Error("weekly report failed", zap.Error(err))
	}
}

// RunWeeklyReport stores the weekly report, refreshes the spreadsheet and
// notifies the manager. Only a failure to build or store the report aborts;
// export and delivery problems are logged.
func (s *Scheduler) RunWeeklyReport(ctx context.Context) error {
	s.logger.Info("generating weekly report")

	report, err := s.reporter.SaveWeeklyReport(ctx, s.now())
	if err != nil {
		return fmt.Errorf("save weekly report: %w", err)
	}

	if err := s.reporter.ExportSheets(ctx); err != nil && !errors.Is(err, reporting.ErrSheetsDisabled) {
		s.logger.Error("failed to export summaries", zap.Error(err))
	}

	if s.notifier == nil {
		return nil
	}
	switch err := s.notifier.NotifyManager(ctx, reporting.FormatWeekly(report)); {
	case errors.Is(err, whatsapp.ErrMessagingDisabled):
		s.logger.Debug("weekly report not sent, messaging disabled")
	case err != nil:
		s.logger.Error("failed to send weekly report", zap.Error(err))
	default:
		s.logger.Info("weekly report sent successfully")
	}
	return nil
}
