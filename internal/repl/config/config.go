// Package config provides configuration management for the qsh REPL. It
// handles loading and parsing of the config.yaml file under the data
// directory and mapping its values to the Config struct.
package config

// Config holds all REPL configuration.
type Config struct {
	// Prompt is the string displayed before each input line.
	Prompt string `yaml:"prompt"`

	// LogLevel controls logging verbosity: debug, info, warn, or error.
	LogLevel string `yaml:"logLevel"`

	// HistoryLimit is how many history entries are loaded into the editor
	// for navigation and search.
	HistoryLimit int `yaml:"historyLimit"`

	// Completion configures the tab-completion engine.
	Completion CompletionConfig `yaml:"completion"`
}

// CompletionConfig holds completion-specific settings.
type CompletionConfig struct {
	// Paths enables quoted-path completion against the filesystem.
	Paths bool `yaml:"paths"`

	// MaxSuggestions caps how many suggestions the editor displays at once.
	// Zero means no cap.
	MaxSuggestions int `yaml:"maxSuggestions"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:       "qsh> ",
		LogLevel:     "info",
		HistoryLimit: 500,
		Completion: CompletionConfig{
			Paths:          true,
			MaxSuggestions: 0,
		},
	}
}
