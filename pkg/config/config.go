package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every error Validate returns
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	GitHub  GitHubConfig
	Scoring models.ScoreSettings
	Sheets  SheetsConfig
	Audit   AuditConfig
	Log     LogConfig
}

type GitHubConfig struct {
	Token      string
	Repository string // owner/name
	APIURL     string // empty means api.github.com
	PerPage    int
}

type SheetsConfig struct {
	CredentialsFile string
	DetailsSheet    string
	OutputSheet     string
	IdentityColumn  string
	NameColumn      string
	EmailColumn     string
	ProfileBaseURL  string
}

type AuditConfig struct {
	Enabled bool
	DBPath  string
}

type LogConfig struct {
	Level string
}

// Load loads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	defaults := models.NewScoreSettings()

	labelPoints := defaults.LabelPoints
	if raw := os.Getenv("LABEL_POINTS"); raw != "" {
		parsed, err := ParseLabelPoints(raw)
		if err != nil {
			return nil, err
		}
		labelPoints = parsed
	}

	windowStart, err := getEnvAsTime("WINDOW_START", defaults.WindowStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := getEnvAsTime("WINDOW_END", defaults.WindowEnd)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			Repository: getEnv("GITHUB_REPOSITORY", "eccentriccoder01/TalkHeal"),
			APIURL:     getEnv("GITHUB_API_URL", ""),
			PerPage:    getEnvAsInt("GITHUB_PER_PAGE", 100),
		},
		Scoring: models.ScoreSettings{
			RequiredLabel: strings.ToLower(getEnv("REQUIRED_LABEL", defaults.RequiredLabel)),
			LabelPoints:   labelPoints,
			WindowStart:   windowStart,
			WindowEnd:     windowEnd,
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			DetailsSheet:    getEnv("DETAILS_SHEET", ""),
			OutputSheet:     getEnv("OUTPUT_SHEET", ""),
			IdentityColumn:  getEnv("DETAILS_IDENTITY_COLUMN", "github_url"),
			NameColumn:      getEnv("DETAILS_NAME_COLUMN", "full_name"),
			EmailColumn:     getEnv("DETAILS_EMAIL_COLUMN", "email"),
			ProfileBaseURL:  getEnv("PROFILE_BASE_URL", "https://github.com/"),
		},
		Audit: AuditConfig{
			Enabled: getEnvAsBool("AUDIT_ENABLED", true),
			DBPath:  getEnv("DB_PATH", "./prpoints.db"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks that the settings needed for a run are present and consistent
func (c *Config) Validate() error {
	if _, _, err := c.GitHub.OwnerAndName(); err != nil {
		return err
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return fmt.Errorf("%w: GITHUB_PER_PAGE must be between 1 and 100, got %d", ErrInvalidConfig, c.GitHub.PerPage)
	}
	if c.Scoring.RequiredLabel == "" {
		return fmt.Errorf("%w: REQUIRED_LABEL is empty", ErrInvalidConfig)
	}
	if c.Sheets.DetailsSheet == "" {
		return fmt.Errorf("%w: DETAILS_SHEET is required", ErrInvalidConfig)
	}
	if c.Sheets.OutputSheet == "" {
		return fmt.Errorf("%w: OUTPUT_SHEET is required", ErrInvalidConfig)
	}
	if c.Audit.Enabled && c.Audit.DBPath == "" {
		return fmt.Errorf("%w: DB_PATH is required when AUDIT_ENABLED is set", ErrInvalidConfig)
	}
	return nil
}

// OwnerAndName splits the "owner/name" repository setting
func (g GitHubConfig) OwnerAndName() (owner, name string, err error) {
	parts := strings.Split(g.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: GITHUB_REPOSITORY must be owner/name, got %q", ErrInvalidConfig, g.Repository)
	}
	return parts[0], parts[1], nil
}

// ParseLabelPoints parses "level 1=3,level 2=7" into a lowercase label table
func ParseLabelPoints(raw string) (map[string]int, error) {
	table := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		label, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: LABEL_POINTS entry %q is not label=points", ErrInvalidConfig, pair)
		}
		points, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: LABEL_POINTS entry %q: %v", ErrInvalidConfig, pair, err)
		}
		table[strings.ToLower(strings.TrimSpace(label))] = points
	}
	return table, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as boolean or returns a default value.
// Besides strconv.ParseBool values it accepts yes/no and on/off.
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true
	case "no", "n", "off":
		return false
	}
	log.Printf("Ignoring %s=%q, not a boolean; using %t", key, value, defaultValue)
	return defaultValue
}

// getEnvAsTime gets an environment variable as an RFC 3339 timestamp.
// Unlike the other helpers, a malformed value is an error.
func getEnvAsTime(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return t, nil
}
