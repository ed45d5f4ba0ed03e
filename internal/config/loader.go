package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(l.config)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields leave the
// configured value in place.
type ConfigOverrides struct {
	// Database overrides
	DBDriver       *string
	DBDir          *string
	DBFilename     *string
	PostgresURL    *string
	DBQueryTimeout *time.Duration

	// Validation overrides
	MaxMinutes *int

	// Display overrides
	WithHours     *bool
	RunningStatus *string

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
	UserID   *string

	// Metrics overrides
	PushURL *string
}

// Apply writes every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.DBDriver != nil {
		config.Database.Driver = *o.DBDriver
	}
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.PostgresURL != nil {
		config.Database.PostgresURL = *o.PostgresURL
	}
	if o.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *o.DBQueryTimeout
	}

	if o.MaxMinutes != nil {
		config.Validation.MaxMinutes = *o.MaxMinutes
	}

	if o.WithHours != nil {
		config.Display.WithHours = *o.WithHours
	}
	if o.RunningStatus != nil {
		config.Display.RunningStatus = *o.RunningStatus
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.LogLevel != nil {
		config.Application.LogLevel = *o.LogLevel
	}
	if o.UserID != nil {
		config.Application.UserID = *o.UserID
	}

	if o.PushURL != nil {
		config.Metrics.PushURL = *o.PushURL
	}
}
