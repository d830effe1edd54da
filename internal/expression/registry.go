// Package expression compiles Cucumber Expressions into anchored text
// matchers with typed placeholders. Matching yields the raw captured
// substrings; type conversion is the caller's concern.
package expression

import (
	"fmt"
	"regexp"
)

// ParameterType is a named placeholder with one or more regex
// alternatives, usable as {name} inside an expression.
type ParameterType struct {
	Name     string
	Patterns []string
}

// ExpressionError reports a malformed expression or parameter type at
// compile (registration) time, never per-match.
type ExpressionError struct {
	Expression string
	Message    string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Expression, e.Message)
}

// builtins are always present and always outrank identically named
// custom types. The anonymous type is registered under "".
var builtins = []ParameterType{
	{Name: "int", Patterns: []string{`-?\d+`}},
	{Name: "float", Patterns: []string{`-?\d*\.?\d+`}},
	{Name: "string", Patterns: []string{`"[^"]*"|'[^']*'`}},
	{Name: "word", Patterns: []string{`[^\s]+`}},
	{Name: "", Patterns: []string{`.*`}},
}

// Registry resolves {name} placeholders during expression compilation.
// Built once per configuration and read-only afterward.
type Registry struct {
	types map[string]ParameterType
}

// NewRegistry builds a registry from the built-in types plus the given
// custom types, in order. A custom type colliding with a built-in name
// is dropped silently; of two custom types sharing a name, the first
// registered wins. Invalid custom patterns fail here.
func NewRegistry(custom ...ParameterType) (*Registry, error) {
	r := &Registry{types: make(map[string]ParameterType)}
	builtin := make(map[string]bool)
	for _, t := range builtins {
		r.types[t.Name] = t
		builtin[t.Name] = true
	}
	for _, t := range custom {
		if len(t.Patterns) == 0 {
			return nil, &ExpressionError{Expression: "{" + t.Name + "}",
				Message: "parameter type needs at least one pattern"}
		}
		for _, p := range t.Patterns {
			if _, err := regexp.Compile(p); err != nil {
				return nil, &ExpressionError{Expression: "{" + t.Name + "}",
					Message: fmt.Sprintf("invalid pattern %q: %v", p, err)}
			}
		}
		if builtin[t.Name] {
			continue
		}
		if _, taken := r.types[t.Name]; taken {
			continue
		}
		r.types[t.Name] = t
	}
	return r, nil
}

// LookupType returns the parameter type registered under name.
func (r *Registry) LookupType(name string) (ParameterType, bool) {
	t, ok := r.types[name]
	return t, ok
}
