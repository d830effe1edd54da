package config

import (
	"fmt"
	"strings"

	"github.com/frherrer/GoBDD-Gherkin/internal/domain"
	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

// Validate checks the Config for required fields and valid values.
// Pattern and filter compilation errors surface later, when the engine
// builds its registries.
func Validate(cfg *Config) error {
	var errs []string

	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	if cfg.Language != "" {
		if _, ok := language.Lookup(cfg.Language); !ok {
			errs = append(errs, fmt.Sprintf("language %q is not bundled (available: %s)",
				cfg.Language, strings.Join(language.Codes(), ", ")))
		}
	}

	for i, pt := range cfg.ParameterTypes {
		if pt.Name == "" {
			errs = append(errs, fmt.Sprintf("parameter_types[%d].name must not be empty", i))
		}
		if len(pt.Patterns) == 0 {
			errs = append(errs, fmt.Sprintf("parameter_types[%d].patterns must not be empty", i))
		}
	}

	validKinds := map[string]bool{"": true, "exact": true, "expression": true, "regexp": true}
	for i, s := range cfg.Steps {
		if s.Pattern == "" {
			errs = append(errs, fmt.Sprintf("steps[%d].pattern must not be empty", i))
		}
		if !validKinds[s.Kind] {
			errs = append(errs, fmt.Sprintf("steps[%d].kind must be one of: exact, expression, regexp (got %q)", i, s.Kind))
		}
	}

	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
