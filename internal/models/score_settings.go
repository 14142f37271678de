package models

import (
	"strings"
	"time"
)

// ScoreSettings holds the rules that decide which pull requests count and how much
type ScoreSettings struct {
	RequiredLabel string         `json:"required_label"`
	LabelPoints   map[string]int `json:"label_points"` // keys are lowercase
	WindowStart   time.Time      `json:"window_start"`
	WindowEnd     time.Time      `json:"window_end"`
}

// IST is the +05:30 zone the default eligibility window is expressed in
var IST = time.FixedZone("IST", 5*60*60+30*60)

func NewScoreSettings() *ScoreSettings {
	return &ScoreSettings{
		RequiredLabel: "gssoc25",
		LabelPoints: map[string]int{
			"level 1": 3,
			"level 2": 7,
			"level 3": 10,
		},
		WindowStart: time.Date(2025, time.August, 9, 16, 50, 0, 0, IST),
		WindowEnd:   time.Date(2025, time.August, 25, 12, 10, 0, 0, IST),
	}
}

// InWindow reports whether t falls inside [WindowStart, WindowEnd], both ends included
func (s *ScoreSettings) InWindow(t time.Time) bool {
	return !t.Before(s.WindowStart) && !t.After(s.WindowEnd)
}

// PointsFor returns the points of the first label that appears in the points table.
// The second return value is false when no label matched.
func (s *ScoreSettings) PointsFor(labels []string) (int, bool) {
	for _, label := range labels {
		if points, ok := s.LabelPoints[strings.ToLower(label)]; ok {
			return points, true
		}
	}
	return 0, false
}
