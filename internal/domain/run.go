package domain

import (
	"time"

	"github.com/google/uuid"
)

type TriggerType string

const (
	TriggerScheduled TriggerType = "scheduled"
	TriggerManual    TriggerType = "manual"
	TriggerStartup   TriggerType = "startup"
)

type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusError   RunStatus = "error"
	StatusSkipped RunStatus = "skipped"
)

// RunTotals holds per-scope or per-run counts.
type RunTotals struct {
	Processed int `json:"processed"`
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Deleted   int `json:"deleted"`
}

func (t *RunTotals) Add(o RunTotals) {
	t.Processed += o.Processed
	t.Added += o.Added
	t.Updated += o.Updated
	t.Skipped += o.Skipped
	t.Deleted += o.Deleted
}

func (t *RunTotals) Count(o Outcome) {
	t.Processed++
	switch o {
	case OutcomeAdded:
		t.Added++
	case OutcomeUpdated:
		t.Updated++
	default:
		t.Skipped++
	}
}

// RunReport describes the outcome of one run or one rejected trigger.
type RunReport struct {
	RunID             uuid.UUID     `json:"run_id"`
	Trigger           TriggerType   `json:"trigger_type"`
	Status            RunStatus     `json:"status"`
	Scope             string        `json:"scope"`
	StartedAt         time.Time     `json:"started_at"`
	FinishedAt        time.Time     `json:"finished_at"`
	Duration          time.Duration `json:"duration"`
	Totals            RunTotals     `json:"totals"`
	ScopesFetched     []string      `json:"scopes_fetched"`
	ScopesFailed      []string      `json:"scopes_failed,omitempty"`
	CategoriesFetched []string      `json:"categories_fetched"`
	ShopsFetched      []string      `json:"shops_fetched"`
	Errors            *ErrorDetail  `json:"errors,omitempty"`
}

// RunLog is one row of the append-only etl_logs table.
type RunLog struct {
	ID              int64        `json:"id"`
	RunID           uuid.UUID    `json:"run_id"`
	ProcessStart    time.Time    `json:"process_start"`
	ProcessEnd      time.Time    `json:"process_end"`
	Scope           string       `json:"scope"`
	Status          RunStatus    `json:"status"`
	Message         string       `json:"message"`
	Totals          RunTotals    `json:"totals"`
	ErrorDetails    *ErrorDetail `json:"error_details,omitempty"`
	DurationSeconds float64      `json:"duration_seconds"`
	Trigger         TriggerType  `json:"trigger_type"`
}

// RunState is the process-wide run bookkeeping.
type RunState struct {
	IsRunning          bool       `json:"is_running"`
	LastRun            *time.Time `json:"last_run"`
	TotalRuns          int        `json:"total_runs"`
	SuccessfulRuns     int        `json:"successful_runs"`
	FailedRuns         int        `json:"failed_runs"`
	SkippedTriggers    int        `json:"skipped_triggers"`
	TotalProductsAdded int        `json:"total_products_added"`
}

// StatusSnapshot is the answer to a status query.
type StatusSnapshot struct {
	State               RunState       `json:"state"`
	CategoryCounts      map[string]int `json:"category_counts"`
	ShopCounts          map[string]int `json:"shop_counts"`
	LastSuccessfulRun   *time.Time     `json:"last_successful_run"`
	LastSuccessfulAdded int            `json:"last_successful_added"`
}
