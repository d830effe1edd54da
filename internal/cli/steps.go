package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoBDD-Gherkin/internal/engine"
	"github.com/frherrer/GoBDD-Gherkin/internal/stepdef"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Dry-run step matching for every compiled pickle step",
	Long:  `Compiles all sources and resolves each pickle step against the registered step patterns, reporting undefined and ambiguous steps. Exits non-zero when any step is not matched by exactly one definition.`,
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

		matched, undefined, ambiguous := 0, 0, 0
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("%s: %v\n", r.URI, r.Err)
				continue
			}
			for _, m := range r.Matches {
				switch m.Result.Outcome {
				case stepdef.Matched:
					matched++
				case stepdef.Undefined:
					undefined++
					fmt.Printf("undefined: %q (%s)\n", m.Text, r.URI)
				case stepdef.Ambiguous:
					ambiguous++
					fmt.Printf("ambiguous: %q (%s) matches:\n", m.Text, r.URI)
					for _, c := range m.Result.Candidates {
						fmt.Printf("    %s %q\n", c.Definition.Kind, c.Definition.Pattern)
					}
				}
			}
		}

		fmt.Printf("\n%d matched, %d undefined, %d ambiguous.\n", matched, undefined, ambiguous)
		if undefined > 0 || ambiguous > 0 {
			return fmt.Errorf("%d step(s) are not matched by exactly one definition", undefined+ambiguous)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}
