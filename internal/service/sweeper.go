package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

// Sweeper deletes discounts whose validity ended before today.
type Sweeper struct {
	discounts DiscountStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewSweeper(discounts DiscountStore, m *metrics.Metrics, logger *slog.Logger, now func() time.Time) *Sweeper {
	return &Sweeper{
		discounts: discounts,
		metrics:   m,
		logger:    logger.With("component", "sweeper"),
		now:       now,
	}
}

func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	today := domain.DateOf(s.now())

	deleted, err := s.discounts.DeleteExpired(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("delete expired discounts: %w", err)
	}

	s.metrics.ExpiredDeleted.Add(float64(deleted))
	s.logger.Info("expired discounts removed", "count", deleted, "today", today.Format(time.DateOnly))

	return deleted, nil
}
