package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"discount_etl/internal/domain"
)

type RunLogStore struct {
	db *sqlx.DB
}

func NewRunLogStore(db *sqlx.DB) *RunLogStore {
	return &RunLogStore{db: db}
}

type runLogRow struct {
	ID                int64          `db:"id"`
	RunID             uuid.UUID      `db:"run_id"`
	ProcessStart      time.Time      `db:"process_start"`
	ProcessEnd        time.Time      `db:"process_end"`
	Scope             string         `db:"scope"`
	Status            string         `db:"status"`
	Message           string         `db:"message"`
	ProductsProcessed int            `db:"products_processed"`
	ProductsAdded     int            `db:"products_added"`
	ProductsUpdated   int            `db:"products_updated"`
	ProductsSkipped   int            `db:"products_skipped"`
	ProductsDeleted   int            `db:"products_deleted"`
	ErrorDetails      sql.NullString `db:"error_details"`
	DurationSeconds   float64        `db:"duration_seconds"`
	TriggerType       string         `db:"trigger_type"`
}

const runLogColumns = `
	id, run_id, process_start, process_end, scope, status, message,
	products_processed, products_added, products_updated, products_skipped,
	products_deleted, error_details, duration_seconds, trigger_type`

func (s *RunLogStore) Insert(ctx context.Context, log *domain.RunLog) error {
	var details sql.NullString
	if log.ErrorDetails != nil {
		b, err := json.Marshal(log.ErrorDetails)
		if err != nil {
			return fmt.Errorf("marshal error details: %w", err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}

	query := `
		INSERT INTO etl_logs (
			run_id, process_start, process_end, scope, status, message,
			products_processed, products_added, products_updated, products_skipped,
			products_deleted, error_details, duration_seconds, trigger_type
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14
		)
		RETURNING id`

	return GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		log.RunID,
		log.ProcessStart,
		log.ProcessEnd,
		log.Scope,
		log.Status,
		log.Message,
		log.Totals.Processed,
		log.Totals.Added,
		log.Totals.Updated,
		log.Totals.Skipped,
		log.Totals.Deleted,
		details,
		log.DurationSeconds,
		log.Trigger,
	).Scan(&log.ID)
}

// LastSuccessful returns nil when no run has succeeded yet.
func (s *RunLogStore) LastSuccessful(ctx context.Context) (*domain.RunLog, error) {
	query := `SELECT ` + runLogColumns + `
		FROM etl_logs
		WHERE status = 'success'
		ORDER BY process_end DESC, id DESC
		LIMIT 1`

	var row runLogRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// Recent returns the newest log rows first.
func (s *RunLogStore) Recent(ctx context.Context, limit int) ([]domain.RunLog, error) {
	query := `SELECT ` + runLogColumns + `
		FROM etl_logs
		ORDER BY process_start DESC, id DESC
		LIMIT $1`

	var rows []runLogRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, limit); err != nil {
		return nil, err
	}

	logs := make([]domain.RunLog, 0, len(rows))
	for _, r := range rows {
		l, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, nil
}

func (r runLogRow) toDomain() (*domain.RunLog, error) {
	l := &domain.RunLog{
		ID:           r.ID,
		RunID:        r.RunID,
		ProcessStart: r.ProcessStart,
		ProcessEnd:   r.ProcessEnd,
		Scope:        r.Scope,
		Status:       domain.RunStatus(r.Status),
		Message:      r.Message,
		Totals: domain.RunTotals{
			Processed: r.ProductsProcessed,
			Added:     r.ProductsAdded,
			Updated:   r.ProductsUpdated,
			Skipped:   r.ProductsSkipped,
			Deleted:   r.ProductsDeleted,
		},
		DurationSeconds: r.DurationSeconds,
		Trigger:         domain.TriggerType(r.TriggerType),
	}

	if r.ErrorDetails.Valid {
		var detail domain.ErrorDetail
		if err := json.Unmarshal([]byte(r.ErrorDetails.String), &detail); err != nil {
			return nil, fmt.Errorf("unmarshal error details of run %s: %w", r.RunID, err)
		}
		l.ErrorDetails = &detail
	}
	return l, nil
}
