package gherkin

import (
	"regexp"
	"strings"

	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

var languageDirective = regexp.MustCompile(`^#\s*language\s*:\s*([a-zA-Z0-9_-]+)\s*$`)

// Tokenize splits source into a flat token stream. The lexer never
// fails: lines that fit no construct come back as TokenOther. The
// stream always ends with exactly one TokenEOF.
//
// lang is the dialect used for keyword recognition until a
// "# language:" directive (first non-empty line only) switches it.
// nil means the default dialect.
func Tokenize(source string, lang *language.Language) []Token {
	if lang == nil {
		lang = language.Default()
	}

	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && source != "" {
		lines = lines[:n-1]
	}

	var (
		tokens       []Token
		inDocString  bool
		docDelimiter string
		seenNonEmpty bool
	)
	structural := structuralKeywords(lang)

	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		indent := indentColumn(line)

		if inDocString {
			if trimmed == docDelimiter {
				tokens = append(tokens, Token{
					Type:      TokenDocStringSeparator,
					Location:  Location{lineNo, indent},
					Delimiter: docDelimiter,
				})
				inDocString = false
				continue
			}
			tokens = append(tokens, Token{
				Type:     TokenDocStringContent,
				Location: Location{lineNo, 1},
				Text:     line,
			})
			continue
		}

		switch {
		case trimmed == "":
			tokens = append(tokens, Token{Type: TokenEmpty, Location: Location{lineNo, 1}})
			continue

		case strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```"):
			delim := trimmed[:3]
			tokens = append(tokens, Token{
				Type:      TokenDocStringSeparator,
				Location:  Location{lineNo, indent},
				Delimiter: delim,
				MediaType: strings.TrimSpace(trimmed[3:]),
			})
			inDocString = true
			docDelimiter = delim
			seenNonEmpty = true
			continue

		case strings.HasPrefix(trimmed, "|"):
			tokens = append(tokens, Token{
				Type:     TokenTableRow,
				Location: Location{lineNo, indent},
				Spans:    splitCells(line, lineNo),
			})
			seenNonEmpty = true
			continue

		case strings.HasPrefix(trimmed, "@"):
			tokens = append(tokens, Token{
				Type:     TokenTagLine,
				Location: Location{lineNo, indent},
				Spans:    splitTags(line, lineNo),
			})
			seenNonEmpty = true
			continue

		case strings.HasPrefix(trimmed, "#"):
			if m := languageDirective.FindStringSubmatch(trimmed); m != nil && !seenNonEmpty {
				code := m[1]
				tokens = append(tokens, Token{
					Type:     TokenLanguage,
					Location: Location{lineNo, indent},
					Text:     code,
				})
				if switched, ok := language.Lookup(code); ok {
					lang = switched
					structural = structuralKeywords(lang)
				}
				seenNonEmpty = true
				continue
			}
			tokens = append(tokens, Token{
				Type:     TokenComment,
				Location: Location{lineNo, 1},
				Text:     line,
			})
			seenNonEmpty = true
			continue
		}

		seenNonEmpty = true

		if tok, ok := matchStructural(structural, trimmed, Location{lineNo, indent}); ok {
			tokens = append(tokens, tok)
			continue
		}
		if tok, ok := matchStep(lang, trimmed, Location{lineNo, indent}); ok {
			tokens = append(tokens, tok)
			continue
		}

		tokens = append(tokens, Token{
			Type:     TokenOther,
			Location: Location{lineNo, indent},
			Text:     trimmed,
		})
	}

	tokens = append(tokens, Token{Type: TokenEOF, Location: Location{len(lines) + 1, 1}})
	return tokens
}

// structuralKeyword pairs one header keyword with its token type.
type structuralKeyword struct {
	keyword string
	typ     TokenType
	outline bool
}

// structuralKeywords flattens the dialect's header keywords, longest
// first, so "Scenario Outline" wins over "Scenario".
func structuralKeywords(lang *language.Language) []structuralKeyword {
	var kws []structuralKeyword
	add := func(words []string, typ TokenType, outline bool) {
		for _, w := range words {
			kws = append(kws, structuralKeyword{w, typ, outline})
		}
	}
	add(lang.Feature, TokenFeatureLine, false)
	add(lang.Rule, TokenRuleLine, false)
	add(lang.Background, TokenBackgroundLine, false)
	add(lang.ScenarioOutline, TokenScenarioLine, true)
	add(lang.Scenario, TokenScenarioLine, false)
	add(lang.Examples, TokenExamplesLine, false)
	for i := 1; i < len(kws); i++ {
		for j := i; j > 0 && len(kws[j].keyword) > len(kws[j-1].keyword); j-- {
			kws[j], kws[j-1] = kws[j-1], kws[j]
		}
	}
	return kws
}

func matchStructural(kws []structuralKeyword, trimmed string, loc Location) (Token, bool) {
	for _, sk := range kws {
		rest, ok := strings.CutPrefix(trimmed, sk.keyword)
		if !ok || !strings.HasPrefix(rest, ":") {
			continue
		}
		return Token{
			Type:     sk.typ,
			Location: loc,
			Keyword:  sk.keyword,
			Outline:  sk.outline,
			Text:     strings.TrimSpace(rest[1:]),
		}, true
	}
	return Token{}, false
}

func matchStep(lang *language.Language, trimmed string, loc Location) (Token, bool) {
	for _, kw := range lang.StepKeywords() {
		rest, ok := strings.CutPrefix(trimmed, kw)
		if !ok {
			continue
		}
		return Token{
			Type:        TokenStepLine,
			Location:    loc,
			Keyword:     kw,
			KeywordType: lang.StepKeywordType(kw),
			Text:        strings.TrimSpace(rest),
		}, true
	}
	return Token{}, false
}

// indentColumn is the 1-based column of the first non-space rune.
func indentColumn(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i + 1
		}
	}
	return 1
}

// splitCells parses a |cell|cell| line into positioned, unescaped cell
// values. Text after the closing pipe is ignored.
func splitCells(line string, lineNo int) []Span {
	var cells []Span
	start := strings.Index(line, "|")
	if start < 0 {
		return nil
	}

	var (
		value    strings.Builder
		escaped  bool
		startCol = -1
		col      = 0
	)
	flush := func() {
		raw := value.String()
		trimmedVal := strings.TrimSpace(raw)
		colAdjust := len(raw) - len(strings.TrimLeft(raw, " \t"))
		cells = append(cells, Span{
			Location: Location{lineNo, startCol + colAdjust},
			Value:    trimmedVal,
		})
		value.Reset()
		startCol = -1
	}

	runes := []rune(line)
	for i := start + 1; i < len(runes); i++ {
		col = i + 1
		r := runes[i]
		if startCol < 0 {
			startCol = col
		}
		if escaped {
			switch r {
			case 'n':
				value.WriteRune('\n')
			case '|', '\\':
				value.WriteRune(r)
			default:
				value.WriteRune('\\')
				value.WriteRune(r)
			}
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '|':
			flush()
		default:
			value.WriteRune(r)
		}
	}
	// An unterminated trailing cell (no closing pipe) is dropped, same
	// as trailing text after the last pipe.
	return cells
}

// splitTags parses an @tag line into positioned tag names. A trailing
// comment (first field starting with '#') ends the tag list.
func splitTags(line string, lineNo int) []Span {
	var tags []Span
	i := 0
	runes := []rune(line)
	for i < len(runes) {
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
			i++
		}
		if i >= len(runes) {
			break
		}
		startCol := i + 1
		j := i
		for j < len(runes) && runes[j] != ' ' && runes[j] != '\t' {
			j++
		}
		word := string(runes[i:j])
		if strings.HasPrefix(word, "#") {
			break
		}
		tags = append(tags, Span{Location: Location{lineNo, startCol}, Value: word})
		i = j
	}
	return tags
}

// EscapeCell applies the table-cell escapes so that a lexed value can
// be rendered back into a |...| row losslessly.
func EscapeCell(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '|':
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
