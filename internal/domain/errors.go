package domain

import "fmt"

// EngineError is the base error type for the outer pipeline phases.
// The core packages (gherkin, pickles, expression, stepdef, tagexpr)
// carry their own typed errors; this one wraps everything that happens
// around them.
type EngineError struct {
	Phase      string // "config", "scan", "docsource", "compile", "match"
	File       string
	LineNumber int
	Message    string
	Cause      error
}

func (e *EngineError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.LineNumber > 0 {
		s += fmt.Sprintf(":%d", e.LineNumber)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewError creates a new EngineError.
func NewError(phase, file string, line int, message string, cause error) *EngineError {
	return &EngineError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}
