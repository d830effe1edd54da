package expression

import (
	"regexp"
	"strings"
)

// Compiled is an anchored matcher built from one Cucumber Expression,
// with one capture per placeholder in left-to-right order.
type Compiled struct {
	Source    string
	re        *regexp.Regexp
	typeNames []string
}

// Match is a successful match: one raw argument per placeholder, plus
// the parameter-type name each came from ("" for anonymous).
type Match struct {
	RawArguments   []string
	ParamTypeNames []string
}

// exprChar is one already-unescaped character of literal expression
// text. escaped tracks whether it may still act as syntax ('/').
type exprChar struct {
	r       rune
	escaped bool
}

// Compile translates a Cucumber Expression into a Compiled matcher.
// Supported syntax: {param} placeholders, (text) optionals, a/b
// alternation, and backslash escapes for literal '(', '{', '/', '\'.
func (r *Registry) Compile(expr string) (*Compiled, error) {
	var (
		pattern   strings.Builder
		typeNames []string
		text      []exprChar
	)
	pattern.WriteString("^")
	flushText := func() {
		pattern.WriteString(renderText(text))
		text = text[:0]
	}

	runes := []rune(expr)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) {
				return nil, &ExpressionError{Expression: expr,
					Message: "trailing backslash"}
			}
			i++
			text = append(text, exprChar{r: runes[i], escaped: true})

		case '{':
			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return nil, &ExpressionError{Expression: expr,
					Message: "missing closing } for parameter"}
			}
			name := string(runes[i+1 : end])
			paramType, ok := r.LookupType(name)
			if !ok {
				return nil, &ExpressionError{Expression: expr,
					Message: "undefined parameter type {" + name + "}"}
			}
			flushText()
			pattern.WriteString(captureGroup(paramType))
			typeNames = append(typeNames, paramType.Name)
			i = end

		case '(':
			var opt []rune
			j := i + 1
			closed := false
			for ; j < len(runes); j++ {
				if runes[j] == '\\' {
					if j+1 >= len(runes) {
						return nil, &ExpressionError{Expression: expr,
							Message: "trailing backslash"}
					}
					j++
					opt = append(opt, runes[j])
					continue
				}
				if runes[j] == ')' {
					closed = true
					break
				}
				opt = append(opt, runes[j])
			}
			if !closed {
				return nil, &ExpressionError{Expression: expr,
					Message: "missing closing ) for optional"}
			}
			if len(opt) == 0 {
				return nil, &ExpressionError{Expression: expr,
					Message: "optional text must not be empty"}
			}
			flushText()
			pattern.WriteString("(?:")
			pattern.WriteString(regexp.QuoteMeta(string(opt)))
			pattern.WriteString(")?")
			i = j

		default:
			text = append(text, exprChar{r: runes[i]})
		}
	}
	flushText()
	pattern.WriteString("$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, &ExpressionError{Expression: expr, Message: err.Error()}
	}
	return &Compiled{Source: expr, re: re, typeNames: typeNames}, nil
}

// Match reports whether text satisfies the expression, and if so the
// captured raw arguments. {string} captures have their quotes stripped.
func (c *Compiled) Match(text string) *Match {
	groups := c.re.FindStringSubmatch(text)
	if groups == nil {
		return nil
	}
	args := make([]string, 0, len(c.typeNames))
	for i, name := range c.typeNames {
		arg := groups[i+1]
		if name == "string" && len(arg) >= 2 {
			arg = arg[1 : len(arg)-1]
		}
		args = append(args, arg)
	}
	return &Match{RawArguments: args, ParamTypeNames: append([]string(nil), c.typeNames...)}
}

// captureGroup renders a parameter type as one capture group, joining
// multiple alternatives without adding extra captures.
func captureGroup(t ParameterType) string {
	if len(t.Patterns) == 1 {
		return "(" + neutralizeGroups(t.Patterns[0]) + ")"
	}
	alts := make([]string, 0, len(t.Patterns))
	for _, p := range t.Patterns {
		alts = append(alts, "(?:"+neutralizeGroups(p)+")")
	}
	return "(" + strings.Join(alts, "|") + ")"
}

// neutralizeGroups rewrites plain capturing groups inside a parameter
// pattern as non-capturing ones, keeping the invariant of exactly one
// submatch per placeholder. Escaped parens and character classes are
// left alone, as are groups already starting with "(?".
func neutralizeGroups(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	inClass := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			b.WriteRune(r)
			i++
			b.WriteRune(runes[i])
			continue
		}
		if inClass {
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
			continue
		}
		switch r {
		case '[':
			inClass = true
			b.WriteRune(r)
		case '(':
			if i+1 < len(runes) && runes[i+1] == '?' {
				b.WriteRune(r)
			} else {
				b.WriteString("(?:")
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderText converts a run of literal text into regex source,
// expanding a/b words into (?:a|b) alternations. Escaped slashes stay
// literal.
func renderText(text []exprChar) string {
	var out strings.Builder
	word := make([]exprChar, 0, len(text))
	flushWord := func() {
		if len(word) > 0 {
			out.WriteString(renderWord(word))
			word = word[:0]
		}
	}
	for _, c := range text {
		if c.r == ' ' && !c.escaped {
			flushWord()
			out.WriteString(" ")
			continue
		}
		word = append(word, c)
	}
	flushWord()
	return out.String()
}

// renderWord renders one whitespace-delimited word, splitting on
// unescaped '/' into alternatives.
func renderWord(word []exprChar) string {
	var alternatives []string
	var current strings.Builder
	hasAlternation := false
	for _, c := range word {
		if c.r == '/' && !c.escaped {
			hasAlternation = true
			alternatives = append(alternatives, current.String())
			current.Reset()
			continue
		}
		current.WriteString(regexp.QuoteMeta(string(c.r)))
	}
	alternatives = append(alternatives, current.String())
	if !hasAlternation {
		return alternatives[0]
	}
	return "(?:" + strings.Join(alternatives, "|") + ")"
}

func indexRune(runes []rune, from int, want rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == want {
			return i
		}
	}
	return -1
}
