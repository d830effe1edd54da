package gherkin

import (
	"fmt"

	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

// Location is a 1-based source position.
type Location struct {
	Line   int
	Column int
}

// ID renders the location in the "line:column" form used as an AST node id.
func (l Location) ID() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func (l Location) String() string {
	return l.ID()
}

// TokenType identifies the kind of a lexed line.
type TokenType int

const (
	TokenEmpty TokenType = iota
	TokenComment
	TokenLanguage
	TokenTagLine
	TokenFeatureLine
	TokenRuleLine
	TokenBackgroundLine
	TokenScenarioLine
	TokenExamplesLine
	TokenStepLine
	TokenDocStringSeparator
	TokenDocStringContent
	TokenTableRow
	TokenOther
	TokenEOF
)

var tokenTypeNames = [...]string{
	"empty", "comment", "language", "tag-line", "feature-line", "rule-line",
	"background-line", "scenario-line", "examples-line", "step-line",
	"doc-string-separator", "doc-string-content", "table-row", "other", "eof",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Span is a positioned fragment of a line: one table cell or one tag.
type Span struct {
	Location Location
	Value    string
}

// Token is one lexed line. Tokens are built once by the lexer and
// consumed once by the parser.
type Token struct {
	Type     TokenType
	Location Location

	// Keyword-bearing tokens (feature, rule, background, scenario,
	// examples, step). Step keywords keep their trailing space.
	Keyword string

	// Step tokens only.
	KeywordType language.KeywordType

	// Scenario tokens only: true when the keyword was an outline form.
	Outline bool

	// Remainder text: the title for keyword lines, the verbatim line for
	// comment/other/doc-string-content tokens, the dialect code for
	// language tokens.
	Text string

	// Tag and table-row tokens.
	Spans []Span

	// Doc-string separators.
	Delimiter string
	MediaType string
}
