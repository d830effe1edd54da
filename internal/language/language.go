// Package language holds the bundled Gherkin keyword tables.
//
// The tables are loaded once from an embedded YAML dataset and are
// read-only afterward, so a single *Language may be shared freely
// across goroutines.
package language

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

// DefaultCode is the language used when a document carries no
// "# language:" directive.
const DefaultCode = "en"

// KeywordType classifies a step keyword semantically.
type KeywordType string

const (
	KeywordTypeContext     KeywordType = "context"
	KeywordTypeAction      KeywordType = "action"
	KeywordTypeOutcome     KeywordType = "outcome"
	KeywordTypeConjunction KeywordType = "conjunction"
	KeywordTypeUnknown     KeywordType = "unknown"
)

// Language is one Gherkin dialect: a code plus per-construct keyword arrays.
// Step keywords (Given/When/Then/And/But) retain their trailing space.
type Language struct {
	Code            string   `yaml:"-"`
	Name            string   `yaml:"name"`
	Native          string   `yaml:"native"`
	Feature         []string `yaml:"feature"`
	Rule            []string `yaml:"rule"`
	Background      []string `yaml:"background"`
	Scenario        []string `yaml:"scenario"`
	ScenarioOutline []string `yaml:"scenarioOutline"`
	Examples        []string `yaml:"examples"`
	Given           []string `yaml:"given"`
	When            []string `yaml:"when"`
	Then            []string `yaml:"then"`
	And             []string `yaml:"and"`
	But             []string `yaml:"but"`

	stepKeywords []string
	keywordTypes map[string]KeywordType
}

var (
	loadOnce  sync.Once
	loadErr   error
	languages map[string]*Language
)

func load() {
	raw := make(map[string]*Language)
	if err := yaml.Unmarshal(languagesYAML, &raw); err != nil {
		loadErr = fmt.Errorf("bundled language table is malformed: %w", err)
		return
	}
	for code, lang := range raw {
		lang.Code = code
		lang.index()
	}
	languages = raw
}

// index precomputes the lookup structures the lexer relies on.
func (l *Language) index() {
	l.keywordTypes = make(map[string]KeywordType)
	classify := func(kws []string, t KeywordType) {
		for _, kw := range kws {
			if kw == "* " {
				l.keywordTypes[kw] = KeywordTypeUnknown
				continue
			}
			if existing, ok := l.keywordTypes[kw]; ok && existing != t {
				// A keyword shared between types has no single meaning.
				l.keywordTypes[kw] = KeywordTypeUnknown
				continue
			}
			l.keywordTypes[kw] = t
		}
	}
	classify(l.Given, KeywordTypeContext)
	classify(l.When, KeywordTypeAction)
	classify(l.Then, KeywordTypeOutcome)
	classify(l.And, KeywordTypeConjunction)
	classify(l.But, KeywordTypeConjunction)

	seen := make(map[string]bool)
	for kw := range l.keywordTypes {
		if !seen[kw] {
			seen[kw] = true
			l.stepKeywords = append(l.stepKeywords, kw)
		}
	}
	// Longest keyword first so prefix matching is greedy.
	sort.Slice(l.stepKeywords, func(i, j int) bool {
		if len(l.stepKeywords[i]) != len(l.stepKeywords[j]) {
			return len(l.stepKeywords[i]) > len(l.stepKeywords[j])
		}
		return l.stepKeywords[i] < l.stepKeywords[j]
	})
}

// Lookup returns the dialect registered under code.
func Lookup(code string) (*Language, bool) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, false
	}
	lang, ok := languages[code]
	return lang, ok
}

// Default returns the English dialect.
func Default() *Language {
	lang, ok := Lookup(DefaultCode)
	if !ok {
		panic("bundled language table is missing the default dialect")
	}
	return lang
}

// Codes returns the sorted codes of all bundled dialects.
func Codes() []string {
	loadOnce.Do(load)
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StepKeywords returns every step keyword of the dialect, longest first.
// Keywords keep their trailing space ("* " included).
func (l *Language) StepKeywords() []string {
	return l.stepKeywords
}

// StepKeywordType reports the semantic type of a step keyword as it
// appears in source (trailing space included).
func (l *Language) StepKeywordType(keyword string) KeywordType {
	if t, ok := l.keywordTypes[keyword]; ok {
		return t
	}
	return KeywordTypeUnknown
}
