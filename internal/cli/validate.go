package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoBDD-Gherkin/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the gobdd.yaml configuration file",
	Long:  `Loads the configuration file, checks it for missing or invalid values, and compiles every parameter type, step pattern and tag filter it declares.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		// Building the engine compiles the registries, so pattern
		// errors surface here rather than at run time.
		if _, err := engine.New(cfg, log); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("Configuration file %q is valid.\n", cfgFile)
		log.Debugf("Loaded config: %+v", cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
