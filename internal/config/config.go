package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/GoBDD-Gherkin/internal/domain"
	"github.com/frherrer/GoBDD-Gherkin/internal/expression"
	"github.com/frherrer/GoBDD-Gherkin/internal/stepdef"
)

// Config is the top-level run configuration.
type Config struct {
	Input          InputConfig           `yaml:"input"`
	Language       string                `yaml:"language"`
	Filter         FilterConfig          `yaml:"filter"`
	ParameterTypes []ParameterTypeConfig `yaml:"parameter_types"`
	Steps          []StepConfig          `yaml:"steps"`
	Logging        LoggingConfig         `yaml:"logging"`
}

type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

type FilterConfig struct {
	// Tags is a boolean tag expression; empty means no filtering.
	Tags string `yaml:"tags"`
}

// ParameterTypeConfig declares one custom {name} parameter type.
// Registration order is the YAML sequence order: of two entries sharing
// a name, the first wins.
type ParameterTypeConfig struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// StepConfig declares one step definition pattern bound to a named
// handler in the host test suite.
type StepConfig struct {
	Kind    string `yaml:"kind"` // "exact", "expression" or "regexp"
	Pattern string `yaml:"pattern"`
	Handler string `yaml:"handler"`
	Source  string `yaml:"source"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// ParameterTypeDescriptors converts the configured custom types into
// registry descriptors, preserving YAML order.
func (c *Config) ParameterTypeDescriptors() []expression.ParameterType {
	out := make([]expression.ParameterType, 0, len(c.ParameterTypes))
	for _, pt := range c.ParameterTypes {
		out = append(out, expression.ParameterType{Name: pt.Name, Patterns: pt.Patterns})
	}
	return out
}

// StepDefinitions converts the configured step patterns into matcher
// definitions, preserving YAML order.
func (c *Config) StepDefinitions() []stepdef.Definition {
	out := make([]stepdef.Definition, 0, len(c.Steps))
	for _, s := range c.Steps {
		out = append(out, stepdef.Definition{
			Kind:    stepKind(s.Kind),
			Pattern: s.Pattern,
			Handler: s.Handler,
			Source:  s.Source,
		})
	}
	return out
}

func stepKind(kind string) stepdef.Kind {
	switch kind {
	case "exact":
		return stepdef.KindExact
	case "regexp":
		return stepdef.KindRegexp
	default:
		return stepdef.KindExpression
	}
}
