// Package stepdef matches pickle step text against registered step
// definitions, with fixed priority across pattern kinds and first-class
// ambiguity reporting.
package stepdef

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frherrer/GoBDD-Gherkin/internal/expression"
)

// Kind is a definition's pattern kind. The declaration order is the
// matching priority: an exact string beats a Cucumber Expression, which
// beats a raw regex.
type Kind int

const (
	KindExact Kind = iota
	KindExpression
	KindRegexp
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindExpression:
		return "expression"
	case KindRegexp:
		return "regexp"
	}
	return "unknown"
}

// Definition is one registered step handler pattern. The handler
// reference is opaque to the matcher.
type Definition struct {
	Kind    Kind
	Pattern string
	Handler any
	Source  string
}

// Outcome is the verdict of matching one step text.
type Outcome int

const (
	// Undefined means no definition matched at any tier.
	Undefined Outcome = iota
	// Matched means exactly one definition matched at the winning tier.
	Matched
	// Ambiguous means two or more definitions matched at the winning
	// tier. It is a reported outcome, not an error; the orchestrator
	// decides how to surface it.
	Ambiguous
)

// Candidate is one definition that matched, with the raw substrings its
// pattern captured.
type Candidate struct {
	Definition Definition
	Arguments  []string
}

// Result is the outcome of one Match call. Candidates holds exactly one
// entry when Matched, every same-tier match when Ambiguous, and none
// when Undefined.
type Result struct {
	Outcome    Outcome
	Candidates []Candidate
}

// compiled pairs a definition with its ready-to-run matcher.
type compiled struct {
	def  Definition
	expr *expression.Compiled
	re   *regexp.Regexp
}

// Matcher evaluates step text against all registered definitions.
// Built once at registration time and read-only afterward.
type Matcher struct {
	tiers [3][]compiled
}

// NewMatcher compiles all definitions up front, so malformed patterns
// surface at registration time instead of mid-run.
func NewMatcher(registry *expression.Registry, defs []Definition) (*Matcher, error) {
	m := &Matcher{}
	for _, def := range defs {
		c := compiled{def: def}
		switch def.Kind {
		case KindExact:
		case KindExpression:
			ex, err := registry.Compile(def.Pattern)
			if err != nil {
				return nil, err
			}
			c.expr = ex
		case KindRegexp:
			re, err := regexp.Compile(anchor(def.Pattern))
			if err != nil {
				return nil, fmt.Errorf("invalid step regexp %q: %w", def.Pattern, err)
			}
			c.re = re
		default:
			return nil, fmt.Errorf("unknown pattern kind %d for %q", def.Kind, def.Pattern)
		}
		m.tiers[def.Kind] = append(m.tiers[def.Kind], c)
	}
	return m, nil
}

// Match evaluates the tiers in priority order. The first tier with at
// least one match decides the outcome; lower-priority tiers are never
// consulted once a higher one matched.
func (m *Matcher) Match(text string) Result {
	for _, tier := range m.tiers {
		var candidates []Candidate
		for _, c := range tier {
			args, ok := c.match(text)
			if ok {
				candidates = append(candidates, Candidate{Definition: c.def, Arguments: args})
			}
		}
		switch len(candidates) {
		case 0:
			continue
		case 1:
			return Result{Outcome: Matched, Candidates: candidates}
		default:
			return Result{Outcome: Ambiguous, Candidates: candidates}
		}
	}
	return Result{Outcome: Undefined}
}

func (c *compiled) match(text string) ([]string, bool) {
	switch c.def.Kind {
	case KindExact:
		return nil, text == c.def.Pattern
	case KindExpression:
		m := c.expr.Match(text)
		if m == nil {
			return nil, false
		}
		return m.RawArguments, true
	case KindRegexp:
		groups := c.re.FindStringSubmatch(text)
		if groups == nil {
			return nil, false
		}
		return groups[1:], true
	}
	return nil, false
}

// anchor pins a raw step regex to the whole text unless the author
// anchored it already.
func anchor(pattern string) string {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}
	return pattern
}
