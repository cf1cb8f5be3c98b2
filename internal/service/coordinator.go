package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

type Dependencies struct {
	Fetcher    Fetcher
	Normalizer Normalizer
	Classifier Classifier
	Upserter   *Upserter
	Sweeper    *Sweeper
	Discounts  DiscountStore
	RunLogs    RunLogStore
	// Publisher is optional.
	Publisher Publisher
	Metrics   *metrics.Metrics
}

type CoordinatorConfig struct {
	Scopes      []domain.Scope
	Concurrency int
	Now         func() time.Time
}

// Coordinator owns the run state. At most one run is active at a time; a
// trigger arriving during a run is recorded as skipped and dropped.
type Coordinator struct {
	deps        Dependencies
	scopes      []domain.Scope
	concurrency int
	now         func() time.Time
	logger      *slog.Logger

	mu    sync.RWMutex
	state domain.RunState

	background sync.WaitGroup
}

func NewCoordinator(deps Dependencies, cfg CoordinatorConfig, logger *slog.Logger) *Coordinator {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Coordinator{
		deps:        deps,
		scopes:      cfg.Scopes,
		concurrency: concurrency,
		now:         now,
		logger:      logger.With("component", "coordinator"),
	}
}

type scopeResult struct {
	totals      domain.RunTotals
	fetchFailed *domain.ErrorDetail
	persistErr  *domain.ErrorDetail
}

// Run performs a run synchronously. Empty scopes means all configured scopes.
// When another run is active it returns the skipped report and
// domain.ErrRunInProgress.
func (c *Coordinator) Run(ctx context.Context, trigger domain.TriggerType, scopes []domain.Scope) (*domain.RunReport, error) {
	scopes = c.scopesOrDefault(scopes)
	runID := uuid.New()

	if !c.acquire() {
		return c.skip(ctx, runID, trigger, scopes), domain.ErrRunInProgress
	}

	return c.execute(context.WithoutCancel(ctx), runID, trigger, scopes), nil
}

// Start begins a run in the background and returns its id. The run is
// detached from ctx cancellation.
func (c *Coordinator) Start(ctx context.Context, trigger domain.TriggerType, scopes []domain.Scope) (uuid.UUID, error) {
	scopes = c.scopesOrDefault(scopes)
	runID := uuid.New()

	if !c.acquire() {
		c.skip(ctx, runID, trigger, scopes)
		return uuid.Nil, domain.ErrRunInProgress
	}

	runCtx := context.WithoutCancel(ctx)
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		c.execute(runCtx, runID, trigger, scopes)
	}()

	return runID, nil
}

// Wait blocks until background runs started with Start have finished.
func (c *Coordinator) Wait() {
	c.background.Wait()
}

// State returns a snapshot of the run state.
func (c *Coordinator) State() domain.RunState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := c.state
	if state.LastRun != nil {
		last := *state.LastRun
		state.LastRun = &last
	}
	return state
}

// Status combines the run state with live store counts.
func (c *Coordinator) Status(ctx context.Context) (*domain.StatusSnapshot, error) {
	today := domain.DateOf(c.now())

	byCategory, err := c.deps.Discounts.CountActiveByCategory(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	byShop, err := c.deps.Discounts.CountActiveByShop(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count by shop: %w", err)
	}
	last, err := c.deps.RunLogs.LastSuccessful(ctx)
	if err != nil {
		return nil, fmt.Errorf("get last successful run: %w", err)
	}

	snapshot := &domain.StatusSnapshot{
		State:          c.State(),
		CategoryCounts: byCategory,
		ShopCounts:     byShop,
	}
	if last != nil {
		end := last.ProcessEnd
		snapshot.LastSuccessfulRun = &end
		snapshot.LastSuccessfulAdded = last.Totals.Added
	}
	return snapshot, nil
}

// Cleanup runs the expiry sweeper outside of a run.
func (c *Coordinator) Cleanup(ctx context.Context) (int64, error) {
	return c.deps.Sweeper.Sweep(ctx)
}

// RecentRuns returns the latest run log rows, newest first.
func (c *Coordinator) RecentRuns(ctx context.Context, limit int) ([]domain.RunLog, error) {
	return c.deps.RunLogs.Recent(ctx, limit)
}

func (c *Coordinator) scopesOrDefault(scopes []domain.Scope) []domain.Scope {
	if len(scopes) == 0 {
		return c.scopes
	}
	return scopes
}

func (c *Coordinator) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsRunning {
		c.state.SkippedTriggers++
		return false
	}
	c.state.IsRunning = true
	c.deps.Metrics.RunInProgress.Set(1)
	return true
}

func (c *Coordinator) skip(ctx context.Context, runID uuid.UUID, trigger domain.TriggerType, scopes []domain.Scope) *domain.RunReport {
	now := c.now()
	report := &domain.RunReport{
		RunID:      runID,
		Trigger:    trigger,
		Status:     domain.StatusSkipped,
		Scope:      scopeLabel(scopes),
		StartedAt:  now,
		FinishedAt: now,
	}

	c.logger.Warn("trigger skipped, run already in progress", "trigger", trigger, "run_id", runID)
	c.deps.Metrics.RunsTotal.WithLabelValues(string(trigger), string(domain.StatusSkipped)).Inc()
	c.writeLog(ctx, report, "skipped: "+domain.ErrRunInProgress.Error())

	return report
}

func (c *Coordinator) execute(ctx context.Context, runID uuid.UUID, trigger domain.TriggerType, scopes []domain.Scope) *domain.RunReport {
	ctx, span := otel.Tracer("discount-etl").Start(ctx, "etl.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("etl.run_id", runID.String()),
		attribute.String("etl.trigger", string(trigger)),
		attribute.Int("etl.scopes", len(scopes)),
	)

	logger := c.logger.With("run_id", runID, "trigger", trigger)
	report := &domain.RunReport{
		RunID:             runID,
		Trigger:           trigger,
		Scope:             scopeLabel(scopes),
		StartedAt:         c.now(),
		ScopesFetched:     []string{},
		CategoriesFetched: []string{},
		ShopsFetched:      []string{},
	}
	logger.Info("etl run started", "scopes", len(scopes), "concurrency", c.concurrency)

	var causes []domain.ErrorDetail
	failed := false

	deleted, err := c.deps.Sweeper.Sweep(ctx)
	if err != nil {
		logger.Error("expiry sweep failed", "error", err)
		c.deps.Metrics.ScopeFailures.WithLabelValues(string(domain.KindSweep)).Inc()
		causes = append(causes, *domain.NewErrorDetail(domain.KindSweep, "", err))
		failed = true
	}
	report.Totals.Deleted = int(deleted)

	results := make([]scopeResult, len(scopes))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, scope := range scopes {
		g.Go(func() error {
			results[i] = c.processScope(ctx, logger, scope)
			return nil
		})
	}
	_ = g.Wait()

	for i, res := range results {
		scope := scopes[i]
		report.Totals.Add(res.totals)

		if res.fetchFailed != nil {
			report.ScopesFailed = append(report.ScopesFailed, scope.String())
			causes = append(causes, *res.fetchFailed)
			continue
		}

		report.ScopesFetched = append(report.ScopesFetched, scope.String())
		switch scope.Kind {
		case domain.ScopeCategory:
			report.CategoriesFetched = append(report.CategoriesFetched, scope.ID)
		case domain.ScopeShop:
			report.ShopsFetched = append(report.ShopsFetched, scope.ID)
		}

		if res.persistErr != nil {
			causes = append(causes, *res.persistErr)
			failed = true
		}
	}

	if len(scopes) > 0 && len(report.ScopesFetched) == 0 {
		failed = true
	}

	report.Status = domain.StatusSuccess
	if failed {
		report.Status = domain.StatusError
	}
	if len(causes) > 0 {
		report.Errors = &domain.ErrorDetail{
			Kind:    domain.KindRun,
			Message: fmt.Sprintf("%d problem(s) in run, %d of %d scopes failed to fetch", len(causes), len(report.ScopesFailed), len(scopes)),
			Context: map[string]string{"run_id": runID.String()},
			Causes:  causes,
		}
	}

	report.FinishedAt = c.now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)

	c.writeLog(ctx, report, summary(report))
	c.publish(ctx, logger, report)
	c.finish(report)

	if report.Status == domain.StatusError {
		span.SetStatus(codes.Error, report.Errors.Message)
	}
	logger.Info("etl run finished",
		"status", report.Status,
		"processed", report.Totals.Processed,
		"added", report.Totals.Added,
		"updated", report.Totals.Updated,
		"skipped", report.Totals.Skipped,
		"deleted", report.Totals.Deleted,
		"scopes_fetched", len(report.ScopesFetched),
		"scopes_failed", len(report.ScopesFailed),
		"duration", report.Duration,
	)

	return report
}

func (c *Coordinator) processScope(ctx context.Context, logger *slog.Logger, scope domain.Scope) scopeResult {
	ctx, span := otel.Tracer("discount-etl").Start(ctx, "etl.Scope")
	defer span.End()
	span.SetAttributes(attribute.String("etl.scope", scope.String()))

	logger = logger.With("scope", scope.String())
	var res scopeResult

	fetched := c.deps.Fetcher.Fetch(ctx, scope)
	if fetched.Failure != nil {
		c.deps.Metrics.ScopeFailures.WithLabelValues(string(domain.KindFetch)).Inc()
		span.SetStatus(codes.Error, fetched.Failure.Message)
		res.fetchFailed = fetched.Failure
		return res
	}

	for _, raw := range fetched.Listings {
		for _, offer := range c.deps.Normalizer.Normalize(raw) {
			class := c.deps.Classifier.Classify(offer)

			outcome, err := c.deps.Upserter.Apply(ctx, offer, class)
			if err != nil && !errors.Is(err, domain.ErrInvalidOffer) {
				logger.Error("persisting offer failed, aborting scope",
					"product", offer.ProductName,
					"shop", offer.ShopName,
					"error", err,
				)
				c.deps.Metrics.ScopeFailures.WithLabelValues(string(domain.KindPersistence)).Inc()
				span.RecordError(err)
				span.SetStatus(codes.Error, "persistence failure")

				detail := domain.NewErrorDetail(domain.KindPersistence, scope.String(), err)
				detail.Context = map[string]string{
					"product": offer.ProductName,
					"shop":    offer.ShopName,
				}
				res.persistErr = detail
				return res
			}

			res.totals.Count(outcome)
			c.deps.Metrics.OffersTotal.WithLabelValues(string(outcome)).Inc()
		}
	}

	logger.Info("scope processed",
		"listings", len(fetched.Listings),
		"attempts", fetched.Attempts,
		"added", res.totals.Added,
		"updated", res.totals.Updated,
		"skipped", res.totals.Skipped,
	)
	return res
}

func (c *Coordinator) writeLog(ctx context.Context, report *domain.RunReport, message string) {
	entry := &domain.RunLog{
		RunID:           report.RunID,
		ProcessStart:    report.StartedAt,
		ProcessEnd:      report.FinishedAt,
		Scope:           report.Scope,
		Status:          report.Status,
		Message:         message,
		Totals:          report.Totals,
		ErrorDetails:    report.Errors,
		DurationSeconds: report.Duration.Seconds(),
		Trigger:         report.Trigger,
	}

	if err := c.deps.RunLogs.Insert(ctx, entry); err != nil {
		c.logger.Error("failed to write run log", "run_id", report.RunID, "error", err)
	}
}

func (c *Coordinator) publish(ctx context.Context, logger *slog.Logger, report *domain.RunReport) {
	if c.deps.Publisher == nil {
		return
	}
	if err := c.deps.Publisher.PublishRun(ctx, report); err != nil {
		logger.Warn("failed to publish run report", "error", err)
	}
}

func (c *Coordinator) finish(report *domain.RunReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	finished := report.FinishedAt
	c.state.IsRunning = false
	c.state.LastRun = &finished
	c.state.TotalRuns++
	if report.Status == domain.StatusSuccess {
		c.state.SuccessfulRuns++
	} else {
		c.state.FailedRuns++
	}
	c.state.TotalProductsAdded += report.Totals.Added

	c.deps.Metrics.RunInProgress.Set(0)
	c.deps.Metrics.RunsTotal.WithLabelValues(string(report.Trigger), string(report.Status)).Inc()
	c.deps.Metrics.RunDuration.Observe(report.Duration.Seconds())
}

func scopeLabel(scopes []domain.Scope) string {
	labels := make([]string, len(scopes))
	for i, s := range scopes {
		labels[i] = s.String()
	}
	return strings.Join(labels, ",")
}

func summary(r *domain.RunReport) string {
	return fmt.Sprintf("processed %d, added %d, updated %d, skipped %d, deleted %d; %d scopes fetched, %d failed",
		r.Totals.Processed, r.Totals.Added, r.Totals.Updated, r.Totals.Skipped, r.Totals.Deleted,
		len(r.ScopesFetched), len(r.ScopesFailed))
}
