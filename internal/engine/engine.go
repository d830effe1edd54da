// Package engine wires the pipeline together: discover sources, parse,
// compile pickles, apply the tag filter and resolve step definitions.
// All logging lives here; the core packages below it never log.
package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoBDD-Gherkin/internal/config"
	"github.com/frherrer/GoBDD-Gherkin/internal/docsource"
	"github.com/frherrer/GoBDD-Gherkin/internal/domain"
	"github.com/frherrer/GoBDD-Gherkin/internal/expression"
	"github.com/frherrer/GoBDD-Gherkin/internal/gherkin"
	"github.com/frherrer/GoBDD-Gherkin/internal/language"
	"github.com/frherrer/GoBDD-Gherkin/internal/pickles"
	"github.com/frherrer/GoBDD-Gherkin/internal/scanner"
	"github.com/frherrer/GoBDD-Gherkin/internal/stepdef"
	"github.com/frherrer/GoBDD-Gherkin/internal/tagexpr"
)

// Engine holds the immutable per-run state: dialect, parameter-type
// registry, step matcher and tag filter. Safe to share once built.
type Engine struct {
	cfg     *config.Config
	scanner scanner.Scanner
	lang    *language.Language
	matcher *stepdef.Matcher
	filter  *tagexpr.Filter
	log     *logrus.Logger
}

// StepMatch pairs one resolved pickle step with its match outcome.
type StepMatch struct {
	PickleID string
	StepID   string
	Text     string
	Result   stepdef.Result
}

// DocumentResult is everything the run produced for one source.
type DocumentResult struct {
	URI      string
	Document *gherkin.Document
	Err      error // parse failure; the rest of the fields are empty

	Pickles []pickles.Pickle // pickles kept by the tag filter
	Skipped int              // pickles dropped by the tag filter
	Matches []StepMatch
}

// Counts tallies the match outcomes of one document.
func (r *DocumentResult) Counts() (matched, undefined, ambiguous int) {
	for _, m := range r.Matches {
		switch m.Result.Outcome {
		case stepdef.Matched:
			matched++
		case stepdef.Undefined:
			undefined++
		case stepdef.Ambiguous:
			ambiguous++
		}
	}
	return matched, undefined, ambiguous
}

// New builds an Engine from configuration. Malformed parameter types,
// step patterns and tag expressions all fail here, before any document
// is touched.
func New(cfg *config.Config, log *logrus.Logger) (*Engine, error) {
	code := cfg.Language
	if code == "" {
		code = language.DefaultCode
	}
	lang, ok := language.Lookup(code)
	if !ok {
		return nil, domain.NewError("config", "", 0, "unknown language "+code, nil)
	}

	registry, err := expression.NewRegistry(cfg.ParameterTypeDescriptors()...)
	if err != nil {
		return nil, domain.NewError("config", "", 0, "invalid parameter type", err)
	}
	matcher, err := stepdef.NewMatcher(registry, cfg.StepDefinitions())
	if err != nil {
		return nil, domain.NewError("config", "", 0, "invalid step definition", err)
	}

	var filter *tagexpr.Filter
	if cfg.Filter.Tags != "" {
		filter, err = tagexpr.Parse(cfg.Filter.Tags)
		if err != nil {
			return nil, domain.NewError("config", "", 0, "invalid tag filter", err)
		}
	}

	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}

	return &Engine{
		cfg:     cfg,
		scanner: scanner.NewScanner(recursive),
		lang:    lang,
		matcher: matcher,
		filter:  filter,
		log:     log,
	}, nil
}

// Run discovers all configured sources and compiles each one. Parse
// failures are recorded per document, not fatal for the run.
func (e *Engine) Run() ([]DocumentResult, error) {
	var allFiles []string
	for _, dir := range e.cfg.Input.Directories {
		e.log.Debugf("Scanning directory: %s", dir)
		files, err := e.scanner.Scan(dir, e.cfg.Input.Include, e.cfg.Input.Exclude)
		if err != nil {
			e.log.Warnf("Failed to scan directory %s: %v", dir, err)
			continue
		}
		allFiles = append(allFiles, files...)
	}

	if len(allFiles) == 0 {
		e.log.Warn("No feature sources found")
		return nil, nil
	}
	e.log.Infof("Found %d source file(s)", len(allFiles))

	var results []DocumentResult
	for _, filePath := range allFiles {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, domain.NewError("compile", filePath, 0, "failed to read file", err)
		}

		if isMarkdown(filePath) {
			blocks, err := docsource.Extract(filePath, content)
			if err != nil {
				return nil, err
			}
			e.log.Debugf("Found %d gherkin block(s) in %s", len(blocks), filePath)
			for _, block := range blocks {
				results = append(results, e.CompileSource(block.URI, block.Source))
			}
			continue
		}

		results = append(results, e.CompileSource(filePath, string(content)))
	}
	return results, nil
}

// CompileSource parses and compiles one Gherkin source, applying the
// tag filter and resolving every kept step.
func (e *Engine) CompileSource(uri, source string) DocumentResult {
	result := DocumentResult{URI: uri}

	doc, err := gherkin.ParseWithLanguage(source, e.lang)
	if err != nil {
		e.log.Warnf("Parse failed for %s: %v", uri, err)
		result.Err = err
		return result
	}
	result.Document = doc

	seq := pickles.NewSequence(doc, uri)
	for {
		p, ok := seq.Next()
		if !ok {
			break
		}
		if e.filter != nil && !e.filter.Matches(tagNames(p.Tags)) {
			result.Skipped++
			continue
		}
		for _, step := range p.Steps {
			result.Matches = append(result.Matches, StepMatch{
				PickleID: p.ID,
				StepID:   step.ID,
				Text:     step.Text,
				Result:   e.matcher.Match(step.Text),
			})
		}
		result.Pickles = append(result.Pickles, *p)
	}

	matched, undefined, ambiguous := result.Counts()
	e.log.Debugf("%s: %d pickle(s), %d skipped, %d matched, %d undefined, %d ambiguous",
		uri, len(result.Pickles), result.Skipped, matched, undefined, ambiguous)
	return result
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func tagNames(tags []pickles.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
