package services

import (
	"context"
	"iter"
	"time"

	"github.com/alimgiray/prpoints/internal/githubapi"
	"github.com/alimgiray/prpoints/internal/models"
	"github.com/alimgiray/prpoints/pkg/logger"
)

// PageSource yields the closed pull requests of a repository page by page
type PageSource interface {
	Pages(ctx context.Context) iter.Seq2[[]*models.PullRequest, error]
}

// RunRecorder persists the audit trail of a run
type RunRecorder interface {
	Create(run *models.Run) error
	Update(run *models.Run) error
	CreateRows(rows []*models.RunRow) error
}

// RunSummary counts what a run did
type RunSummary struct {
	PRsFetched   int
	PRsScored    int
	Contributors int
	RowsWritten  int
}

type PointsService struct {
	source       PageSource
	scoring      *ScoringService
	contributors *ContributorService
	export       *ExportService
	runs         RunRecorder
}

// NewPointsService wires the pipeline; runs may be nil to skip the audit trail
func NewPointsService(source PageSource, scoring *ScoringService, contributors *ContributorService, export *ExportService, runs RunRecorder) *PointsService {
	return &PointsService{
		source:       source,
		scoring:      scoring,
		contributors: contributors,
		export:       export,
		runs:         runs,
	}
}

// Run fetches, scores, aggregates, resolves and writes, in that order. Any error
// aborts the run; rows already written to the output sheet are left in place.
func (s *PointsService) Run(ctx context.Context, run *models.Run, details RecordReader, output RangeWriter) (*RunSummary, error) {
	run.MarkStarted()
	if s.runs != nil {
		if err := s.runs.Create(run); err != nil {
			logger.WithError(err).Warn("Failed to record run start")
		}
	}

	summary, err := s.execute(ctx, run, details, output)

	run.PRsFetched = summary.PRsFetched
	run.PRsScored = summary.PRsScored
	run.Contributors = summary.Contributors
	run.RowsWritten = summary.RowsWritten
	if err != nil {
		run.SetError(err.Error())
		run.MarkFailed()
	} else {
		run.MarkCompleted()
	}

	if s.runs != nil {
		if updateErr := s.runs.Update(run); updateErr != nil {
			logger.WithError(updateErr).Warn("Failed to record run result")
		}
	}

	return summary, err
}

func (s *PointsService) execute(ctx context.Context, run *models.Run, details RecordReader, output RangeWriter) (*RunSummary, error) {
	summary := &RunSummary{}

	logger.Info("Fetching pull requests")
	prs, err := githubapi.CollectPullRequests(s.source.Pages(ctx))
	if err != nil {
		return summary, err
	}
	summary.PRsFetched = len(prs)

	logger.Infof("Found %d closed pull requests, filtering and scoring", len(prs))
	entries := s.scoring.Score(prs)
	summary.PRsScored = len(entries)

	logger.Infof("%d pull requests match the criteria in the window, aggregating points", len(entries))
	agg := AggregatePoints(entries)
	summary.Contributors = agg.Len()

	logger.Info("Loading contributor details")
	if err := s.contributors.Load(ctx, details); err != nil {
		return summary, err
	}

	logger.Info("Updating results sheet")
	written, err := s.export.Export(ctx, output, agg, s.contributors)
	summary.RowsWritten = len(written)
	s.recordRows(run, written)
	if err != nil {
		return summary, err
	}

	logger.Infof("Results sheet updated with %d rows", len(written))
	return summary, nil
}

func (s *PointsService) recordRows(run *models.Run, written []ExportedRow) {
	if s.runs == nil || len(written) == 0 {
		return
	}

	now := time.Now()
	rows := make([]*models.RunRow, 0, len(written))
	for _, w := range written {
		rows = append(rows, &models.RunRow{
			RunID:       run.ID,
			RowNumber:   w.RowNumber,
			Identity:    w.Identity,
			TotalPoints: w.Row.TotalPoints,
			WrittenAt:   now,
		})
	}

	if err := s.runs.CreateRows(rows); err != nil {
		logger.WithError(err).Warn("Failed to record written rows")
	}
}
