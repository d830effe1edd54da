// Package pickles flattens a parsed Gherkin document into executable
// scenario instances. Every pickle is fully self-contained: it holds no
// references back into the AST, so independent pickles may be executed
// concurrently.
package pickles

import "github.com/frherrer/GoBDD-Gherkin/internal/language"

// Pickle is one fully resolved scenario instance: a plain scenario, or
// one outline and examples-row combination. Immutable once built.
type Pickle struct {
	ID         string
	URI        string
	Name       string
	Language   string
	Tags       []Tag
	Steps      []Step
	AstNodeIDs []string
}

// Tag is one tag inherited onto a pickle, with the id of the AST node
// it came from.
type Tag struct {
	Name      string
	AstNodeID string
}

// Step is one resolved step of a pickle. Text and argument have all
// `<placeholder>` occurrences substituted.
type Step struct {
	ID          string
	Keyword     string
	KeywordType language.KeywordType
	Text        string
	Argument    *Argument
	AstNodeIDs  []string
}

// Argument is a step's resolved block argument: exactly one field is set.
type Argument struct {
	DocString *DocString
	DataTable *DataTable
}

// DocString is a resolved doc-string argument.
type DocString struct {
	MediaType string
	Content   string
}

// DataTable is a resolved data-table argument.
type DataTable struct {
	Rows []Row
}

// Row is one resolved table row.
type Row struct {
	Cells []string
}
