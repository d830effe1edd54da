package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/GoBDD-Gherkin/internal/config"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.New()
)

// rootCmd is the base command for gobdd.
var rootCmd = &cobra.Command{
	Use:   "gobdd",
	Short: "Compile Gherkin specifications into executable pickles",
	Long: `GoBDD-Gherkin turns Gherkin feature files (standalone or embedded in
Markdown documentation) into deterministic executable pickles, and
resolves step text against the step patterns registered in gobdd.yaml.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(logrus.InfoLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gobdd.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads and validates the configured file, applying the
// logging level it declares unless --verbose already raised it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if !verbose && cfg.Logging.Level != "" {
		if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
			log.SetLevel(level)
		}
	}
	return cfg, nil
}
