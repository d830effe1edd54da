package gherkin

import "github.com/frherrer/GoBDD-Gherkin/internal/language"

// Document is the top-level result of parsing a Gherkin source.
// A document without a Feature holds only comments and compiles to
// zero pickles.
type Document struct {
	Feature  *Feature
	Comments []Comment
}

// Feature is the single top-level node of a document.
type Feature struct {
	Location    Location
	Tags        []Tag
	Language    string
	Keyword     string
	Name        string
	Description string
	Children    []FeatureChild
}

// FeatureChild is a child of a Feature: exactly one field is set.
type FeatureChild struct {
	Background *Background
	Scenario   *Scenario
	Rule       *Rule
}

// Rule groups scenarios under a shared business rule, with its own
// optional Background.
type Rule struct {
	Location    Location
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	Children    []RuleChild
}

// RuleChild is a child of a Rule: exactly one field is set.
type RuleChild struct {
	Background *Background
	Scenario   *Scenario
}

// Background holds steps implicitly prepended to every scenario in its
// scope. At most one per Feature scope and one per Rule scope.
type Background struct {
	Location    Location
	Keyword     string
	Name        string
	Description string
	Steps       []Step
}

// Scenario is a concrete scenario or a scenario outline template.
type Scenario struct {
	Location    Location
	Tags        []Tag
	Keyword     string
	Outline     bool
	Name        string
	Description string
	Steps       []Step
	Examples    []Examples
}

// Step is a single Given/When/Then/And/But line with an optional
// DocString or DataTable argument (never both).
type Step struct {
	Location    Location
	Keyword     string
	KeywordType language.KeywordType
	Text        string
	DocString   *DocString
	DataTable   *DataTable
}

// DocString is a fenced multi-line string argument.
type DocString struct {
	Location  Location
	Delimiter string
	MediaType string
	Content   string
}

// DataTable is a |cell|cell| table argument.
type DataTable struct {
	Location Location
	Rows     []TableRow
}

// Examples is one tagged Examples block of a scenario outline.
type Examples struct {
	Location    Location
	Tags        []Tag
	Keyword     string
	Name        string
	Description string
	TableHeader *TableRow
	TableBody   []TableRow
}

// TableRow is one row of a DataTable or Examples table.
type TableRow struct {
	Location Location
	Cells    []TableCell
}

// TableCell is one cell value with its source position.
type TableCell struct {
	Location Location
	Value    string
}

// Tag is one @name annotation.
type Tag struct {
	Location Location
	Name     string
}

// Comment is one comment line, kept verbatim.
type Comment struct {
	Location Location
	Text     string
}
