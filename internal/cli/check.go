package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoBDD-Gherkin/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse all feature sources and report syntax errors",
	Long:  `Discovers every configured feature source, parses it, and prints each syntax error with its location. Exits non-zero when any source fails to parse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := engine.New(cfg, log)
		if err != nil {
			return err
		}

		results, err := eng.Run()
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("%s: %v\n", r.URI, r.Err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d source(s) failed to parse", failed, len(results))
		}
		fmt.Printf("All %d source(s) parsed cleanly.\n", len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
