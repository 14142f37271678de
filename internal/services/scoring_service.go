package services

import (
	"errors"
	"slices"
	"strings"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/alimgiray/prpoints/pkg/logger"
)

type ScoringService struct {
	settings models.ScoreSettings
}

// NewScoringService validates the settings and returns a service that scores with them
func NewScoringService(settings models.ScoreSettings) (*ScoringService, error) {
	if err := ValidateScoreSettings(&settings); err != nil {
		return nil, err
	}

	normalized := make(map[string]int, len(settings.LabelPoints))
	for label, points := range settings.LabelPoints {
		normalized[strings.ToLower(label)] = points
	}
	settings.LabelPoints = normalized
	settings.RequiredLabel = strings.ToLower(settings.RequiredLabel)

	return &ScoringService{settings: settings}, nil
}

// ValidateScoreSettings checks the required label, the points table and the window
func ValidateScoreSettings(settings *models.ScoreSettings) error {
	if strings.TrimSpace(settings.RequiredLabel) == "" {
		return errors.New("required label is empty")
	}

	// Totals are only ever summed upward
	for _, points := range settings.LabelPoints {
		if points < 0 {
			return errors.New("score values must be non-negative")
		}
	}

	if settings.WindowStart.IsZero() || settings.WindowEnd.IsZero() {
		return errors.New("eligibility window is not set")
	}
	if settings.WindowEnd.Before(settings.WindowStart) {
		return errors.New("eligibility window ends before it starts")
	}

	return nil
}

// Score keeps the merged pull requests inside the window that carry the required
// label, and emits one entry per kept PR with the points of its first scoring label
func (s *ScoringService) Score(prs []*models.PullRequest) []models.ScoredEntry {
	var entries []models.ScoredEntry

	for _, pr := range prs {
		if !pr.IsMerged() {
			continue
		}
		if !s.settings.InWindow(*pr.MergedAt) {
			continue
		}

		labels := lowerLabels(pr.Labels)
		if !slices.Contains(labels, s.settings.RequiredLabel) {
			continue
		}

		points, matched := s.settings.PointsFor(labels)
		if !matched {
			logger.WithField("pr", pr.Number).Debug("No scoring label, counting 0 points")
		}

		entries = append(entries, models.ScoredEntry{
			Identity: NormalizeIdentity(pr.AuthorURL),
			Points:   points,
		})
	}

	return entries
}

// AggregatePoints sums the entries per identity. Entries whose identity normalized to
// "" are summed under the empty key like any other.
func AggregatePoints(entries []models.ScoredEntry) *models.AggregatedPoints {
	agg := models.NewAggregatedPoints()
	for _, entry := range entries {
		agg.Add(entry.Identity, entry.Points)
	}

	if agg.Has("") {
		logger.Warnf("%d points attributed to pull requests with no resolvable author", agg.Total(""))
	}

	return agg
}

func lowerLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = strings.ToLower(label)
	}
	return out
}
