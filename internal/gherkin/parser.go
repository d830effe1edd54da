package gherkin

import (
	"strings"

	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

// Parse builds the AST for one Gherkin document using the default
// dialect (unless the source carries a "# language:" directive).
// On a grammar violation it returns a *ParserError and no AST.
func Parse(source string) (*Document, error) {
	return ParseWithLanguage(source, nil)
}

// ParseWithLanguage is Parse with an explicit starting dialect.
func ParseWithLanguage(source string, lang *language.Language) (*Document, error) {
	if lang == nil {
		lang = language.Default()
	}
	p := &parser{tokens: Tokenize(source, lang), langCode: lang.Code}
	return p.parseDocument()
}

// parser is a single-use recursive-descent cursor over the token stream.
type parser struct {
	tokens   []Token
	pos      int
	comments []Comment
	langCode string
}

// peek returns the next significant token without consuming it,
// collecting comments and skipping blank lines along the way.
func (p *parser) peek() Token {
	for {
		tok := p.tokens[p.pos]
		switch tok.Type {
		case TokenEmpty:
			p.pos++
		case TokenComment:
			p.comments = append(p.comments, Comment{Location: tok.Location, Text: tok.Text})
			p.pos++
		default:
			return tok
		}
	}
}

func (p *parser) take() Token {
	tok := p.peek()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}

	if tok := p.peek(); tok.Type == TokenLanguage {
		if _, ok := language.Lookup(tok.Text); !ok {
			return nil, newParserError(ErrUnexpectedToken, tok.Location,
				"unknown language: %q", tok.Text)
		}
		p.langCode = tok.Text
		p.take()
	}

	tags := p.parseTags()

	switch tok := p.peek(); tok.Type {
	case TokenEOF:
		if len(tags) > 0 {
			return nil, newParserError(ErrUnexpectedEOF, tok.Location,
				"expected feature definition after tags, got end of file")
		}
	case TokenFeatureLine:
		feature, err := p.parseFeature(tags)
		if err != nil {
			return nil, err
		}
		doc.Feature = feature
	default:
		return nil, newParserError(ErrUnexpectedToken, tok.Location,
			"expected feature definition, got %s", tok.Type)
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, newParserError(ErrUnexpectedToken, tok.Location,
			"expected end of file, got %s", tok.Type)
	}

	doc.Comments = p.comments
	return doc, nil
}

func (p *parser) parseFeature(tags []Tag) (*Feature, error) {
	tok := p.take()
	feature := &Feature{
		Location: tok.Location,
		Tags:     tags,
		Language: p.langCode,
		Keyword:  tok.Keyword,
		Name:     tok.Text,
	}
	feature.Description = p.parseDescription()

	var backgroundSeen, scenarioSeen bool
	for {
		pendingTags := p.parseTags()
		tok := p.peek()
		switch tok.Type {
		case TokenBackgroundLine:
			if len(pendingTags) > 0 {
				return nil, newParserError(ErrUnexpectedToken, tok.Location,
					"backgrounds cannot be tagged")
			}
			if backgroundSeen {
				return nil, newParserError(ErrDuplicateBackground, tok.Location,
					"a feature may declare only one background")
			}
			if scenarioSeen {
				return nil, newParserError(ErrUnexpectedToken, tok.Location,
					"background must come before the first scenario")
			}
			backgroundSeen = true
			bg, err := p.parseBackground()
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, FeatureChild{Background: bg})

		case TokenScenarioLine:
			scenarioSeen = true
			sc, err := p.parseScenario(pendingTags)
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, FeatureChild{Scenario: sc})

		case TokenRuleLine:
			scenarioSeen = true
			rule, err := p.parseRule(pendingTags)
			if err != nil {
				return nil, err
			}
			feature.Children = append(feature.Children, FeatureChild{Rule: rule})

		case TokenEOF:
			if len(pendingTags) > 0 {
				return nil, newParserError(ErrUnexpectedEOF, tok.Location,
					"expected scenario or rule after tags, got end of file")
			}
			return feature, nil

		default:
			return nil, newParserError(ErrUnexpectedToken, tok.Location,
				"expected background, scenario or rule, got %s", tok.Type)
		}
	}
}

func (p *parser) parseRule(tags []Tag) (*Rule, error) {
	tok := p.take()
	rule := &Rule{
		Location: tok.Location,
		Tags:     tags,
		Keyword:  tok.Keyword,
		Name:     tok.Text,
	}
	rule.Description = p.parseDescription()

	var backgroundSeen, scenarioSeen bool
	for {
		// Tags here may belong to this rule's next scenario or to the
		// next top-level construct; backtrack when it is not ours.
		savedPos, savedComments := p.pos, len(p.comments)
		pendingTags := p.parseTags()
		tok := p.peek()
		switch tok.Type {
		case TokenBackgroundLine:
			if len(pendingTags) > 0 {
				return nil, newParserError(ErrUnexpectedToken, tok.Location,
					"backgrounds cannot be tagged")
			}
			if backgroundSeen {
				return nil, newParserError(ErrDuplicateBackground, tok.Location,
					"a rule may declare only one background")
			}
			if scenarioSeen {
				return nil, newParserError(ErrUnexpectedToken, tok.Location,
					"background must come before the rule's first scenario")
			}
			backgroundSeen = true
			bg, err := p.parseBackground()
			if err != nil {
				return nil, err
			}
			rule.Children = append(rule.Children, RuleChild{Background: bg})

		case TokenScenarioLine:
			scenarioSeen = true
			sc, err := p.parseScenario(pendingTags)
			if err != nil {
				return nil, err
			}
			rule.Children = append(rule.Children, RuleChild{Scenario: sc})

		default:
			p.pos, p.comments = savedPos, p.comments[:savedComments]
			return rule, nil
		}
	}
}

func (p *parser) parseBackground() (*Background, error) {
	tok := p.take()
	bg := &Background{
		Location: tok.Location,
		Keyword:  tok.Keyword,
		Name:     tok.Text,
	}
	bg.Description = p.parseDescription()

	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	bg.Steps = steps
	return bg, nil
}

func (p *parser) parseScenario(tags []Tag) (*Scenario, error) {
	tok := p.take()
	sc := &Scenario{
		Location: tok.Location,
		Tags:     tags,
		Keyword:  tok.Keyword,
		Outline:  tok.Outline,
		Name:     tok.Text,
	}
	sc.Description = p.parseDescription()

	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	sc.Steps = steps

	for {
		savedPos, savedComments := p.pos, len(p.comments)
		exTags := p.parseTags()
		tok := p.peek()
		if tok.Type != TokenExamplesLine {
			p.pos, p.comments = savedPos, p.comments[:savedComments]
			return sc, nil
		}
		if !sc.Outline {
			return nil, newParserError(ErrUnexpectedToken, tok.Location,
				"examples are only allowed under a scenario outline")
		}
		examples, err := p.parseExamples(exTags)
		if err != nil {
			return nil, err
		}
		sc.Examples = append(sc.Examples, *examples)
	}
}

func (p *parser) parseExamples(tags []Tag) (*Examples, error) {
	tok := p.take()
	examples := &Examples{
		Location: tok.Location,
		Tags:     tags,
		Keyword:  tok.Keyword,
		Name:     tok.Text,
	}
	examples.Description = p.parseDescription()

	rows, err := p.parseTableRows()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		examples.TableHeader = &rows[0]
		examples.TableBody = rows[1:]
	}
	return examples, nil
}

func (p *parser) parseSteps() ([]Step, error) {
	var steps []Step
	for p.peek().Type == TokenStepLine {
		tok := p.take()
		step := Step{
			Location:    tok.Location,
			Keyword:     tok.Keyword,
			KeywordType: tok.KeywordType,
			Text:        tok.Text,
		}
		switch p.peek().Type {
		case TokenDocStringSeparator:
			ds, err := p.parseDocString()
			if err != nil {
				return nil, err
			}
			step.DocString = ds
		case TokenTableRow:
			rows, err := p.parseTableRows()
			if err != nil {
				return nil, err
			}
			step.DataTable = &DataTable{Location: rows[0].Location, Rows: rows}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (p *parser) parseDocString() (*DocString, error) {
	open := p.take()
	ds := &DocString{
		Location:  open.Location,
		Delimiter: open.Delimiter,
		MediaType: open.MediaType,
	}

	var lines []string
	for {
		tok := p.tokens[p.pos]
		switch tok.Type {
		case TokenDocStringContent:
			lines = append(lines, tok.Text)
			p.pos++
		case TokenDocStringSeparator:
			p.pos++
			ds.Content = strings.Join(lines, "\n")
			return ds, nil
		default:
			return nil, newParserError(ErrUnexpectedEOF, tok.Location,
				"doc string opened at %s is never closed", open.Location)
		}
	}
}

func (p *parser) parseTableRows() ([]TableRow, error) {
	var rows []TableRow
	for p.peek().Type == TokenTableRow {
		tok := p.take()
		row := TableRow{Location: tok.Location}
		for _, span := range tok.Spans {
			row.Cells = append(row.Cells, TableCell{Location: span.Location, Value: span.Value})
		}
		if len(rows) > 0 && len(row.Cells) != len(rows[0].Cells) {
			return nil, newParserError(ErrInconsistentTableCellCount, tok.Location,
				"table row has %d cells, expected %d", len(row.Cells), len(rows[0].Cells))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *parser) parseTags() []Tag {
	var tags []Tag
	for p.peek().Type == TokenTagLine {
		tok := p.take()
		for _, span := range tok.Spans {
			tags = append(tags, Tag{Location: span.Location, Name: span.Value})
		}
	}
	return tags
}

func (p *parser) parseDescription() string {
	var lines []string
	for p.peek().Type == TokenOther {
		lines = append(lines, p.take().Text)
	}
	return strings.Join(lines, "\n")
}
