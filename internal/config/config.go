package config

import (
	"errors"
	"fmt"

	"github.com/harrison/jvmtune/internal/logger"
	"github.com/joeshaw/envdecode"
)

// Defaults applied when neither the environment nor flags say otherwise.
const (
	DefaultConfigPath = "jvmtune.yaml"
	DefaultLogLevel   = "info"
)

// Env represents jvmtune settings taken from the environment
type Env struct {
	// ConfigPath is the encoder configuration file. ENV: JVMTUNE_CONFIG
	ConfigPath string `env:"JVMTUNE_CONFIG"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error). ENV: JVMTUNE_LOG_LEVEL
	LogLevel string `env:"JVMTUNE_LOG_LEVEL"`

	// Encoder selects a section of a multi-encoder file. ENV: JVMTUNE_ENCODER
	Encoder string `env:"JVMTUNE_ENCODER"`
}

// DefaultEnv returns an Env with default values
func DefaultEnv() *Env {
	return &Env{
		ConfigPath: DefaultConfigPath,
		LogLevel:   DefaultLogLevel,
	}
}

// LoadEnv reads JVMTUNE_* variables over DefaultEnv. Unset or empty variables
// leave the default in place.
func LoadEnv() (*Env, error) {
	env := DefaultEnv()
	if err := envdecode.Decode(env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// MergeWithFlags merges CLI flags into the environment settings.
// Non-nil flag values override environment values.
func (e *Env) MergeWithFlags(configPath, encoderName, logLevel *string) {
	if configPath != nil {
		e.ConfigPath = *configPath
	}
	if encoderName != nil {
		e.Encoder = *encoderName
	}
	if logLevel != nil {
		e.LogLevel = *logLevel
	}
}

// Validate validates the settings
func (e *Env) Validate() error {
	if e.ConfigPath == "" {
		return fmt.Errorf("config path cannot be empty")
	}
	if !logger.ValidLogLevel(e.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", e.LogLevel)
	}
	return nil
}
