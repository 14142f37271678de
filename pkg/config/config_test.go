package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LABEL_POINTS", "")
	t.Setenv("WINDOW_START", "")
	t.Setenv("WINDOW_END", "")
	t.Setenv("REQUIRED_LABEL", "")
	t.Setenv("GITHUB_REPOSITORY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eccentriccoder01/TalkHeal", cfg.GitHub.Repository)
	assert.Equal(t, 100, cfg.GitHub.PerPage)
	assert.Equal(t, "gssoc25", cfg.Scoring.RequiredLabel)
	assert.Equal(t, map[string]int{"level 1": 3, "level 2": 7, "level 3": 10}, cfg.Scoring.LabelPoints)
	assert.Equal(t, "github_url", cfg.Sheets.IdentityColumn)
	assert.Equal(t, "https://github.com/", cfg.Sheets.ProfileBaseURL)

	start, _ := time.Parse(time.RFC3339, "2025-08-09T16:50:00+05:30")
	assert.True(t, cfg.Scoring.WindowStart.Equal(start))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octo/hello")
	t.Setenv("REQUIRED_LABEL", "Hacktoberfest")
	t.Setenv("LABEL_POINTS", "Easy=1, Hard = 5")
	t.Setenv("WINDOW_START", "2024-10-01T00:00:00Z")
	t.Setenv("WINDOW_END", "2024-10-31T23:59:59Z")
	t.Setenv("AUDIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hacktoberfest", cfg.Scoring.RequiredLabel)
	assert.Equal(t, map[string]int{"easy": 1, "hard": 5}, cfg.Scoring.LabelPoints)
	assert.Equal(t, 2024, cfg.Scoring.WindowStart.Year())
	assert.False(t, cfg.Audit.Enabled)

	owner, name, err := cfg.GitHub.OwnerAndName()
	require.NoError(t, err)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "hello", name)
}

func TestLoadRejectsMalformedWindow(t *testing.T) {
	t.Setenv("WINDOW_START", "yesterday")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseLabelPoints(t *testing.T) {
	t.Run("Valid table", func(t *testing.T) {
		table, err := ParseLabelPoints("level 1=3,level 2=7,,level 3=10")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"level 1": 3, "level 2": 7, "level 3": 10}, table)
	})

	t.Run("Missing separator", func(t *testing.T) {
		_, err := ParseLabelPoints("level 1:3")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Non-numeric points", func(t *testing.T) {
		_, err := ParseLabelPoints("level 1=three")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Setenv("GITHUB_REPOSITORY", "octo/hello")
		t.Setenv("DETAILS_SHEET", "details.xlsx")
		t.Setenv("OUTPUT_SHEET", "output.xlsx")
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	assert.NoError(t, valid(t).Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Bad repository", func(c *Config) { c.GitHub.Repository = "octo" }},
		{"Page size too large", func(c *Config) { c.GitHub.PerPage = 500 }},
		{"Empty required label", func(c *Config) { c.Scoring.RequiredLabel = "" }},
		{"Missing details sheet", func(c *Config) { c.Sheets.DetailsSheet = "" }},
		{"Missing output sheet", func(c *Config) { c.Sheets.OutputSheet = "" }},
		{"Audit without path", func(c *Config) { c.Audit.Enabled = true; c.Audit.DBPath = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid(t)
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	// window order is checked once, when the scoring service is built
	t.Run("Inverted window", func(t *testing.T) {
		cfg := valid(t)
		cfg.Scoring.WindowEnd = cfg.Scoring.WindowStart.Add(-time.Hour)
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadAuditEnabled(t *testing.T) {
	testCases := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"off", false},
		{"No", false},
		{"on", true},
		{"YES", true},
		{"maybe", true},
	}

	for _, tc := range testCases {
		t.Run("AUDIT_ENABLED="+tc.value, func(t *testing.T) {
			t.Setenv("AUDIT_ENABLED", tc.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Audit.Enabled)
		})
	}
}
