package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of config.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a yaml file. If the file doesn't
// exist, it returns the default configuration with no error. A malformed
// file is a non-fatal error: defaults are returned and the problem is
// recorded in Errors.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("no config file, using defaults", zap.String("path", path))
			return result, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		l.logger.Warn("malformed config file, using defaults", zap.String("path", path), zap.Error(err))
		result.Errors = append(result.Errors, fmt.Errorf("parsing config file: %w", err))
		return result, nil
	}

	if cfg.HistoryLimit < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("historyLimit must not be negative, got %d", cfg.HistoryLimit))
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}

	result.Config = cfg
	return result, nil
}
