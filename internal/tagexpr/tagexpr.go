// Package tagexpr parses boolean tag expressions ("@a and not @b")
// into predicates over tag sets.
package tagexpr

import "fmt"

// ErrorKind discriminates filter syntax errors.
type ErrorKind string

const (
	ErrEmptyExpression           ErrorKind = "emptyExpression"
	ErrUnexpectedToken           ErrorKind = "unexpectedToken"
	ErrUnexpectedEndOfExpression ErrorKind = "unexpectedEndOfExpression"
	ErrMissingClosingParenthesis ErrorKind = "missingClosingParenthesis"
)

// FilterError reports a malformed tag expression at construction time.
type FilterError struct {
	Kind    ErrorKind
	Message string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid tag expression: %s", e.Message)
}

// Filter is a compiled tag expression. Read-only after Parse; Matches
// walks the tree without allocating.
type Filter struct {
	Source string
	root   node
}

// node is the closed set of expression tree shapes.
type node interface {
	matches(tags []string) bool
}

type tagNode struct{ name string }
type notNode struct{ operand node }
type andNode struct{ left, right node }
type orNode struct{ left, right node }

func (n tagNode) matches(tags []string) bool {
	for _, t := range tags {
		if t == n.name {
			return true
		}
	}
	return false
}

func (n notNode) matches(tags []string) bool { return !n.operand.matches(tags) }
func (n andNode) matches(tags []string) bool { return n.left.matches(tags) && n.right.matches(tags) }
func (n orNode) matches(tags []string) bool  { return n.left.matches(tags) || n.right.matches(tags) }

// Matches evaluates the filter against a pickle's tag names.
func (f *Filter) Matches(tags []string) bool {
	return f.root.matches(tags)
}

// Parse compiles a tag expression. Operator precedence, tightest first:
// not, and, or; parentheses override.
func Parse(expression string) (*Filter, error) {
	tokens := tokenize(expression)
	if len(tokens) == 0 {
		return nil, &FilterError{Kind: ErrEmptyExpression, Message: "expression is empty"}
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &FilterError{Kind: ErrUnexpectedToken,
			Message: fmt.Sprintf("unexpected token %q after expression", tok)}
	}
	return &Filter{Source: expression, root: root}, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok != "or" {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok != "and" {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &FilterError{Kind: ErrUnexpectedEndOfExpression,
			Message: "expected a tag, \"not\" or \"(\", got end of expression"}
	}
	switch tok {
	case "not":
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil

	case "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok {
			return nil, &FilterError{Kind: ErrMissingClosingParenthesis,
				Message: "expected \")\", got end of expression"}
		}
		if closing != ")" {
			return nil, &FilterError{Kind: ErrUnexpectedToken,
				Message: fmt.Sprintf("expected \")\", got %q", closing)}
		}
		p.pos++
		return inner, nil

	case ")", "and", "or":
		return nil, &FilterError{Kind: ErrUnexpectedToken,
			Message: fmt.Sprintf("expected a tag, \"not\" or \"(\", got %q", tok)}

	default:
		p.pos++
		return tagNode{name: tok}, nil
	}
}

// tokenize splits the expression on whitespace, with parentheses as
// standalone tokens even when written flush against a tag.
func tokenize(expression string) []string {
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}
	for _, r := range expression {
		switch r {
		case ' ', '\t', '\n', '\r':
			flush()
		case '(', ')':
			flush()
			tokens = append(tokens, string(r))
		default:
			current = append(current, r)
		}
	}
	flush()
	return tokens
}
