package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alimgiray/prpoints/internal/githubapi"
	"github.com/alimgiray/prpoints/internal/models"
	"github.com/alimgiray/prpoints/internal/repositories"
	"github.com/alimgiray/prpoints/internal/services"
	"github.com/alimgiray/prpoints/internal/sheets"
	"github.com/alimgiray/prpoints/pkg/config"
	"github.com/alimgiray/prpoints/pkg/database"
	"github.com/alimgiray/prpoints/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	if err := runPipeline(context.Background(), cfg); err != nil {
		logger.Fatalf("Points run failed: %v", err)
	}
}

func runPipeline(ctx context.Context, cfg *config.Config) error {
	// Initialize dependencies
	owner, repo, err := cfg.GitHub.OwnerAndName()
	if err != nil {
		return err
	}
	githubClient, err := githubapi.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return err
	}
	fetcher := githubapi.NewPullRequestFetcher(githubClient, owner, repo, cfg.GitHub.PerPage)

	scoringService, err := services.NewScoringService(cfg.Scoring)
	if err != nil {
		return fmt.Errorf("invalid score settings: %w", err)
	}
	contributorService := services.NewContributorService(services.ContributorColumns{
		Identity: cfg.Sheets.IdentityColumn,
		FullName: cfg.Sheets.NameColumn,
		Email:    cfg.Sheets.EmailColumn,
	})
	exportService := services.NewExportService(cfg.Sheets.ProfileBaseURL)

	runRecorder, closeAudit := openRunRecorder(cfg.Audit)
	defer closeAudit()

	pointsService := services.NewPointsService(fetcher, scoringService, contributorService, exportService, runRecorder)

	// Open spreadsheets
	opener := sheets.NewOpener(cfg.Sheets.CredentialsFile)
	details, err := opener.Open(ctx, cfg.Sheets.DetailsSheet)
	if err != nil {
		return fmt.Errorf("failed to open contributor details sheet: %w", err)
	}
	defer details.Close()

	output, err := opener.Open(ctx, cfg.Sheets.OutputSheet)
	if err != nil {
		return fmt.Errorf("failed to open output sheet: %w", err)
	}
	defer output.Close()

	run := models.NewRun(cfg.GitHub.Repository, cfg.Sheets.OutputSheet)
	logger.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"repository":   cfg.GitHub.Repository,
		"window_start": cfg.Scoring.WindowStart.Format(time.RFC3339),
		"window_end":   cfg.Scoring.WindowEnd.Format(time.RFC3339),
	}).Info("Starting points run")

	summary, err := pointsService.Run(ctx, run, details, output)
	if err != nil {
		return fmt.Errorf("run %s failed after writing %d rows: %w", run.ID, summary.RowsWritten, err)
	}

	logger.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"prs_fetched":  summary.PRsFetched,
		"prs_scored":   summary.PRsScored,
		"contributors": summary.Contributors,
		"rows_written": summary.RowsWritten,
	}).Info("Points run completed")

	return nil
}

// openRunRecorder returns the audit repository, or nil when audit is disabled or its
// database cannot be opened. The returned func closes the database.
func openRunRecorder(audit config.AuditConfig) (services.RunRecorder, func()) {
	if !audit.Enabled {
		return nil, func() {}
	}

	db, err := database.Open(audit.DBPath)
	if err != nil {
		logger.WithError(err).WithField("path", audit.DBPath).Warn("Audit database unavailable, continuing without run history")
		return nil, func() {}
	}

	return repositories.NewRunRepository(db), func() { db.Close() }
}
