package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"discount_etl/internal/domain"
)

// Runner is the single entry point all triggers go through.
type Runner interface {
	Run(ctx context.Context, trigger domain.TriggerType, scopes []domain.Scope) (*domain.RunReport, error)
}

type Config struct {
	RunTimes          []string // "HH:MM" in Location
	StartupDelay      time.Duration
	DisableStartupRun bool
	Location          *time.Location
}

// Scheduler triggers runs at fixed times of day and once after startup.
type Scheduler struct {
	runner  Runner
	cron    *cron.Cron
	cfg     Config
	logger  *slog.Logger
	baseCtx context.Context
}

func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	logger = logger.With("component", "scheduler")

	s := &Scheduler{
		runner:  runner,
		cfg:     cfg,
		logger:  logger,
		baseCtx: context.Background(),
	}
	s.cron = cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.Recover(cronLogger{logger})),
	)

	for _, rt := range cfg.RunTimes {
		spec, err := cronSpec(rt)
		if err != nil {
			return nil, err
		}
		if _, err := s.cron.AddFunc(spec, func() { s.trigger(domain.TriggerScheduled) }); err != nil {
			return nil, fmt.Errorf("schedule run at %s: %w", rt, err)
		}
	}

	if !cfg.DisableStartupRun {
		s.cron.Schedule(&onceAfter{delay: cfg.StartupDelay}, cron.FuncJob(func() {
			s.trigger(domain.TriggerStartup)
		}))
	}

	return s, nil
}

// Start blocks until ctx is done, then waits for a run in progress.
func (s *Scheduler) Start(ctx context.Context) error {
	s.baseCtx = context.WithoutCancel(ctx)
	s.cron.Start()

	s.logger.Info("scheduler started",
		"run_times", s.cfg.RunTimes,
		"timezone", s.cfg.Location.String(),
		"startup_run", !s.cfg.DisableStartupRun,
		"startup_delay", s.cfg.StartupDelay,
	)

	<-ctx.Done()

	s.logger.Info("scheduler stopping, waiting for active run")
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")

	return ctx.Err()
}

func (s *Scheduler) trigger(trigger domain.TriggerType) {
	report, err := s.runner.Run(s.baseCtx, trigger, nil)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		s.logger.Warn("trigger skipped, run in progress", "trigger", trigger)
	case err != nil:
		s.logger.Error("run failed", "trigger", trigger, "error", err)
	default:
		s.logger.Info("triggered run finished",
			"trigger", trigger,
			"run_id", report.RunID,
			"status", report.Status,
		)
	}
}

// cronSpec turns "HH:MM" into a daily five-field cron expression.
func cronSpec(runTime string) (string, error) {
	t, err := time.Parse("15:04", runTime)
	if err != nil {
		return "", fmt.Errorf("invalid run time %q: %w", runTime, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// onceAfter fires a single time, delay after the cron starts.
type onceAfter struct {
	delay time.Duration
	fired bool
}

func (o *onceAfter) Next(t time.Time) time.Time {
	if o.fired {
		return time.Time{}
	}
	o.fired = true
	return t.Add(o.delay)
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
