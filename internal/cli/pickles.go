package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frherrer/GoBDD-Gherkin/internal/engine"
	"github.com/frherrer/GoBDD-Gherkin/internal/pickles"
)

var picklesTags string

var picklesCmd = &cobra.Command{
	Use:   "pickles",
	Short: "Compile feature sources and list the resulting pickles",
	Long:  `Compiles every configured source into pickles (expanding scenario outlines), applies the tag filter, and prints each pickle with its resolved steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if picklesTags != "" {
			cfg.Filter.Tags = picklesTags
		}
		eng, err := engine.New(cfg, log)
		if err != nil {
			return err
		}

		results, err := eng.Run()
		if err != nil {
			return err
		}

		total, skipped := 0, 0
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("%s: %v\n", r.URI, r.Err)
				continue
			}
			skipped += r.Skipped
			for i := range r.Pickles {
				total++
				printPickle(&r.Pickles[i])
			}
		}
		fmt.Printf("\n%d pickle(s), %d skipped by tag filter.\n", total, skipped)
		return nil
	},
}

func init() {
	picklesCmd.Flags().StringVarP(&picklesTags, "tags", "t", "", "tag expression overriding the configured filter")
	rootCmd.AddCommand(picklesCmd)
}

func printPickle(p *pickles.Pickle) {
	fmt.Printf("%s: %s", p.URI, p.Name)
	if len(p.Tags) > 0 {
		names := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			names = append(names, t.Name)
		}
		fmt.Printf("  [%s]", strings.Join(names, " "))
	}
	fmt.Println()
	for _, step := range p.Steps {
		fmt.Printf("    %s%s\n", step.Keyword, step.Text)
	}
}
