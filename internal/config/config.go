package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"momentum/internal/timecalc"
	"momentum/internal/validation"
)

// EnvPrefix is prepended to every environment variable, e.g. MOMENTUM_DB_DIR
const EnvPrefix = "MOMENTUM"

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for momentum
type Config struct {
	Database    DatabaseConfig    `envconfig:"DB"`
	Validation  ValidationConfig  `envconfig:"VALIDATION"`
	Display     DisplayConfig     `envconfig:"DISPLAY"`
	Application ApplicationConfig `envconfig:"APP"`
	Metrics     MetricsConfig     `envconfig:"METRICS"`
}

// DatabaseConfig holds database-related configuration. QueryTimeout bounds
// how long a statement may wait: sqlite's busy timeout or postgres'
// statement_timeout.
type DatabaseConfig struct {
	Driver         string        `envconfig:"DRIVER"`
	Dir            string        `envconfig:"DIR"`
	Filename       string        `envconfig:"FILENAME"`
	PostgresURL    string        `envconfig:"POSTGRES_URL"`
	QueryTimeout   time.Duration `envconfig:"QUERY_TIMEOUT"`
	DirPermissions uint32        `envconfig:"DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMinLength        int           `envconfig:"NAME_MIN"`
	NameMaxLength        int           `envconfig:"NAME_MAX"`
	DescriptionMaxLength int           `envconfig:"DESCRIPTION_MAX"`
	MaxMinutes           int           `envconfig:"MAX_MINUTES"`
	MaxTaskDuration      time.Duration `envconfig:"MAX_TASK_DURATION"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	WithHours     bool   `envconfig:"WITH_HOURS"`
	RunningStatus string `envconfig:"RUNNING_STATUS"`
	TimeFormat    string `envconfig:"TIME_FORMAT"`
	ListFormat    string `envconfig:"LIST_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `envconfig:"TIMEOUT"`
	Verbose  bool          `envconfig:"VERBOSE"`
	LogLevel string        `envconfig:"LOG_LEVEL"`
	UserID   string        `envconfig:"USER_ID"`
}

// MetricsConfig holds the Pushgateway target. An empty PushURL disables pushing.
type MetricsConfig struct {
	PushURL string `envconfig:"PUSH_URL"`
	Job     string `envconfig:"JOB"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	rules := validation.DefaultRules()

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            filepath.Join(homeDir, ".momentum"),
			Filename:       "momentum.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			NameMinLength:        rules.NameMinLength,
			NameMaxLength:        rules.NameMaxLength,
			DescriptionMaxLength: rules.DescriptionMaxLength,
			MaxMinutes:           timecalc.DefaultMaxMinutes,
			MaxTaskDuration:      rules.MaxTaskDuration,
		},
		Display: DisplayConfig{
			WithHours:     false,
			RunningStatus: "running",
			TimeFormat:    "2006-01-02 15:04:05",
			ListFormat:    "table",
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			LogLevel: "info",
			UserID:   defaultUserID(),
		},
		Metrics: MetricsConfig{
			Job: "momentum_cli",
		},
	}
}

func defaultUserID() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// GetDatabasePath returns the full path to the sqlite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Rules returns the input limits the validators enforce
func (c *Config) Rules() validation.Rules {
	return validation.Rules{
		NameMinLength:        c.Validation.NameMinLength,
		NameMaxLength:        c.Validation.NameMaxLength,
		DescriptionMaxLength: c.Validation.DescriptionMaxLength,
		MaxTaskDuration:      c.Validation.MaxTaskDuration,
	}
}

// ClockLimits returns the bounds applied to typed MM:SS durations
func (c *Config) ClockLimits() timecalc.ClockLimits {
	return timecalc.ClockLimits{MaxMinutes: c.Validation.MaxMinutes, MaxSeconds: timecalc.MaxSeconds}
}

// LoadFromEnvironment overrides the current values with any MOMENTUM_*
// variables that are set. Unset variables keep their current value.
func (c *Config) LoadFromEnvironment() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return &ConfigError{Field: "environment", Message: err.Error()}
	}
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return &ConfigError{Field: "database.postgres_url", Message: "postgres url is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or postgres"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.NameMinLength < 1 {
		return &ConfigError{Field: "validation.name_min_length", Message: "name minimum length must be at least 1"}
	}
	if c.Validation.NameMaxLength < c.Validation.NameMinLength {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be greater than minimum length"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}
	if c.Validation.MaxMinutes < 1 {
		return &ConfigError{Field: "validation.max_minutes", Message: "max minutes must be at least 1"}
	}
	if c.Validation.MaxTaskDuration <= 0 {
		return &ConfigError{Field: "validation.max_task_duration", Message: "max task duration must be positive"}
	}

	// Validate display configuration
	if c.Display.RunningStatus == "" {
		return &ConfigError{Field: "display.running_status", Message: "running status text cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	switch c.Display.ListFormat {
	case "table", "json", "csv":
	default:
		return &ConfigError{Field: "display.list_format", Message: "list format must be table, json or csv"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Application.LogLevel)); err != nil {
		return &ConfigError{Field: "application.log_level", Message: "unknown log level " + c.Application.LogLevel}
	}
	if strings.TrimSpace(c.Application.UserID) == "" {
		return &ConfigError{Field: "application.user_id", Message: "user id cannot be empty"}
	}

	// Validate metrics configuration
	if c.Metrics.PushURL != "" && c.Metrics.Job == "" {
		return &ConfigError{Field: "metrics.job", Message: "job name is required when pushing metrics"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
