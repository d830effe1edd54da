package gherkin

import "fmt"

// ParserErrorKind discriminates the grammar violations the parser reports.
type ParserErrorKind string

const (
	ErrUnexpectedToken            ParserErrorKind = "unexpectedToken"
	ErrUnexpectedEOF              ParserErrorKind = "unexpectedEOF"
	ErrInconsistentTableCellCount ParserErrorKind = "inconsistentTableCellCount"
	ErrDuplicateBackground        ParserErrorKind = "duplicateBackground"
)

// ParserError is the terminal error for one document. When it is
// returned, no AST is.
type ParserError struct {
	Kind     ParserErrorKind
	Location Location
	Message  string
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("(%d:%d): %s", e.Location.Line, e.Location.Column, e.Message)
}

func newParserError(kind ParserErrorKind, loc Location, format string, args ...any) *ParserError {
	return &ParserError{
		Kind:     kind,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}
