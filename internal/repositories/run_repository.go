package repositories

import (
	"database/sql"

	"github.com/alimgiray/prpoints/internal/models"
)

// RunRepository handles database operations for the run audit trail
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run
func (r *RunRepository) Create(run *models.Run) error {
	query := `
		INSERT INTO runs (id, repository, output_sheet, status, prs_fetched, prs_scored, contributors, rows_written, error_message, started_at, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.Repository,
		run.OutputSheet,
		run.Status,
		run.PRsFetched,
		run.PRsScored,
		run.Contributors,
		run.RowsWritten,
		run.ErrorMessage,
		run.StartedAt,
		run.CompletedAt,
		run.CreatedAt,
	)
	return err
}

// Update stores the run's status, counters and timestamps
func (r *RunRepository) Update(run *models.Run) error {
	query := `
		UPDATE runs SET
			status = ?, prs_fetched = ?, prs_scored = ?, contributors = ?, rows_written = ?,
			error_message = ?, started_at = ?, completed_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		run.Status,
		run.PRsFetched,
		run.PRsScored,
		run.Contributors,
		run.RowsWritten,
		run.ErrorMessage,
		run.StartedAt,
		run.CompletedAt,
		run.ID,
	)
	return err
}

// GetByID retrieves a run by ID
func (r *RunRepository) GetByID(id string) (*models.Run, error) {
	query := `
		SELECT id, repository, output_sheet, status, prs_fetched, prs_scored, contributors, rows_written, error_message, started_at, completed_at, created_at
		FROM runs WHERE id = ?
	`

	run := &models.Run{}
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Repository,
		&run.OutputSheet,
		&run.Status,
		&run.PRsFetched,
		&run.PRsScored,
		&run.Contributors,
		&run.RowsWritten,
		&run.ErrorMessage,
		&run.StartedAt,
		&run.CompletedAt,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// CreateRows inserts the rows written during a run in one transaction
func (r *RunRepository) CreateRows(rows []*models.RunRow) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO run_rows (run_id, row_number, identity, total_points, written_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row.RunID, row.RowNumber, row.Identity, row.TotalPoints, row.WrittenAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRowsByRunID retrieves the rows of a run ordered by sheet row
func (r *RunRepository) GetRowsByRunID(runID string) ([]*models.RunRow, error) {
	query := `
		SELECT run_id, row_number, identity, total_points, written_at
		FROM run_rows
		WHERE run_id = ?
		ORDER BY row_number ASC
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runRows []*models.RunRow
	for rows.Next() {
		row := &models.RunRow{}
		if err := rows.Scan(&row.RunID, &row.RowNumber, &row.Identity, &row.TotalPoints, &row.WrittenAt); err != nil {
			return nil, err
		}
		runRows = append(runRows, row)
	}

	return runRows, rows.Err()
}
