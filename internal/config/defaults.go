package config

import "github.com/frherrer/GoBDD-Gherkin/internal/language"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Directories: []string{"features"},
			Include:     []string{"**/*.feature", "**/*.md"},
			Exclude:     []string{"vendor/**", "node_modules/**"},
			Recursive:   &recursive,
		},
		Language: language.DefaultCode,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
