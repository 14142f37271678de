package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the status of a scoring run
type RunStatus string

const (
	RunStatusInProgress RunStatus = "in-progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// Run is the audit record of one execution of the pipeline
type Run struct {
	ID           string     `json:"id"`
	Repository   string     `json:"repository"`
	OutputSheet  string     `json:"output_sheet"`
	Status       RunStatus  `json:"status"`
	PRsFetched   int        `json:"prs_fetched"`
	PRsScored    int        `json:"prs_scored"`
	Contributors int        `json:"contributors"`
	RowsWritten  int        `json:"rows_written"`
	ErrorMessage *string    `json:"error_message"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RunRow is one output row written during a run
type RunRow struct {
	RunID       string    `json:"run_id"`
	RowNumber   int       `json:"row_number"`
	Identity    string    `json:"identity"`
	TotalPoints int       `json:"total_points"`
	WrittenAt   time.Time `json:"written_at"`
}

// NewRun creates a new Run with a generated UUID
func NewRun(repository, outputSheet string) *Run {
	return &Run{
		ID:          uuid.New().String(),
		Repository:  repository,
		OutputSheet: outputSheet,
		Status:      RunStatusInProgress,
		CreatedAt:   time.Now(),
	}
}

// MarkStarted marks the run as started
func (r *Run) MarkStarted() {
	now := time.Now()
	r.Status = RunStatusInProgress
	r.StartedAt = &now
}

// MarkCompleted marks the run as completed
func (r *Run) MarkCompleted() {
	now := time.Now()
	r.Status = RunStatusCompleted
	r.CompletedAt = &now
}

// MarkFailed marks the run as failed
func (r *Run) MarkFailed() {
	now := time.Now()
	r.Status = RunStatusFailed
	r.CompletedAt = &now
}

// SetError sets an error message for the run
func (r *Run) SetError(message string) {
	r.ErrorMessage = &message
}

// IsCompleted checks if the run is completed
func (r *Run) IsCompleted() bool {
	return r.Status == RunStatusCompleted
}
