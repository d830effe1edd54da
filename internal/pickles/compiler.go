package pickles

import (
	"strconv"
	"strings"

	"github.com/frherrer/GoBDD-Gherkin/internal/gherkin"
)

// Compile flattens a document into its pickles, eagerly. A document
// without a feature compiles to zero pickles.
func Compile(doc *gherkin.Document, uri string) []Pickle {
	var out []Pickle
	seq := NewSequence(doc, uri)
	for {
		p, ok := seq.Next()
		if !ok {
			return out
		}
		out = append(out, *p)
	}
}

// Sequence is a restartable, single-consumer pickle cursor. It holds
// one work item per scenario (never per examples row), so outlines with
// very large tables stream in constant extra memory.
//
// A Sequence must not be pulled from multiple goroutines at once;
// independent Sequences are fully independent.
type Sequence struct {
	uri      string
	langCode string
	items    []workItem

	item    int
	block   int
	row     int
	counter int
}

// workItem is one scenario together with its applicable background
// chain and the tags it inherits from enclosing scopes.
type workItem struct {
	scenario      *gherkin.Scenario
	background    []gherkin.Step // feature background, then rule background
	inheritedTags []gherkin.Tag  // feature tags, then rule tags
}

// NewSequence prepares a lazy pickle stream over doc.
func NewSequence(doc *gherkin.Document, uri string) *Sequence {
	seq := &Sequence{uri: uri}
	if doc == nil || doc.Feature == nil {
		return seq
	}
	feature := doc.Feature
	seq.langCode = feature.Language

	var featureBackground []gherkin.Step
	for _, child := range feature.Children {
		switch {
		case child.Background != nil:
			featureBackground = child.Background.Steps

		case child.Scenario != nil:
			seq.items = append(seq.items, workItem{
				scenario:      child.Scenario,
				background:    featureBackground,
				inheritedTags: feature.Tags,
			})

		case child.Rule != nil:
			rule := child.Rule
			background := featureBackground
			inherited := concatTags(feature.Tags, rule.Tags)
			for _, rc := range rule.Children {
				switch {
				case rc.Background != nil:
					background = concatSteps(featureBackground, rc.Background.Steps)
				case rc.Scenario != nil:
					seq.items = append(seq.items, workItem{
						scenario:      rc.Scenario,
						background:    background,
						inheritedTags: inherited,
					})
				}
			}
		}
	}
	return seq
}

// Next yields the following pickle, or false when the stream is
// exhausted. At most one examples row is in flight at a time.
func (s *Sequence) Next() (*Pickle, bool) {
	for s.item < len(s.items) {
		item := s.items[s.item]

		if !item.scenario.Outline {
			s.item++
			return s.compileScenario(item), true
		}

		for s.block < len(item.scenario.Examples) {
			examples := &item.scenario.Examples[s.block]
			if examples.TableHeader == nil || s.row >= len(examples.TableBody) {
				s.block++
				s.row = 0
				continue
			}
			row := &examples.TableBody[s.row]
			s.row++
			return s.compileOutlineRow(item, examples, row), true
		}

		s.item++
		s.block = 0
		s.row = 0
	}
	return nil, false
}

// Reset rewinds the cursor so the sequence can be replayed from the
// start. A replay assigns the same ids as the first pass.
func (s *Sequence) Reset() {
	s.item, s.block, s.row, s.counter = 0, 0, 0, 0
}

func (s *Sequence) nextID() string {
	id := strconv.Itoa(s.counter)
	s.counter++
	return id
}

func (s *Sequence) compileScenario(item workItem) *Pickle {
	sc := item.scenario

	var steps []Step
	for i := range item.background {
		steps = append(steps, s.compileStep(&item.background[i], nil, ""))
	}
	for i := range sc.Steps {
		steps = append(steps, s.compileStep(&sc.Steps[i], nil, ""))
	}

	return &Pickle{
		ID:         s.nextID(),
		URI:        s.uri,
		Name:       sc.Name,
		Language:   s.langCode,
		Tags:       pickleTags(concatTags(item.inheritedTags, sc.Tags)),
		Steps:      steps,
		AstNodeIDs: []string{sc.Location.ID()},
	}
}

func (s *Sequence) compileOutlineRow(item workItem, examples *gherkin.Examples, row *gherkin.TableRow) *Pickle {
	sc := item.scenario
	vars := rowVariables(examples.TableHeader, row)
	rowID := row.Location.ID()

	var steps []Step
	for i := range item.background {
		steps = append(steps, s.compileStep(&item.background[i], vars, rowID))
	}
	for i := range sc.Steps {
		steps = append(steps, s.compileStep(&sc.Steps[i], vars, rowID))
	}

	tags := concatTags(concatTags(item.inheritedTags, sc.Tags), examples.Tags)
	return &Pickle{
		ID:         s.nextID(),
		URI:        s.uri,
		Name:       interpolate(sc.Name, vars),
		Language:   s.langCode,
		Tags:       pickleTags(tags),
		Steps:      steps,
		AstNodeIDs: []string{sc.Location.ID(), rowID},
	}
}

func (s *Sequence) compileStep(step *gherkin.Step, vars []variable, rowID string) Step {
	ids := []string{step.Location.ID()}
	if rowID != "" {
		ids = append(ids, rowID)
	}
	return Step{
		ID:          s.nextID(),
		Keyword:     step.Keyword,
		KeywordType: step.KeywordType,
		Text:        interpolate(step.Text, vars),
		Argument:    compileArgument(step, vars),
		AstNodeIDs:  ids,
	}
}

func compileArgument(step *gherkin.Step, vars []variable) *Argument {
	switch {
	case step.DocString != nil:
		return &Argument{DocString: &DocString{
			MediaType: interpolate(step.DocString.MediaType, vars),
			Content:   interpolate(step.DocString.Content, vars),
		}}
	case step.DataTable != nil:
		table := &DataTable{Rows: make([]Row, 0, len(step.DataTable.Rows))}
		for _, row := range step.DataTable.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, interpolate(cell.Value, vars))
			}
			table.Rows = append(table.Rows, Row{Cells: cells})
		}
		return &Argument{DataTable: table}
	default:
		return nil
	}
}

// variable is one <name> → value binding from an examples row.
type variable struct {
	name  string
	value string
}

func rowVariables(header, row *gherkin.TableRow) []variable {
	vars := make([]variable, 0, len(header.Cells))
	for i, cell := range header.Cells {
		if i >= len(row.Cells) {
			break
		}
		vars = append(vars, variable{name: cell.Value, value: row.Cells[i].Value})
	}
	return vars
}

// interpolate substitutes <name> placeholders. Text without a '<' is
// returned as-is without allocating; placeholders with no matching
// column stay verbatim.
func interpolate(text string, vars []variable) string {
	if len(vars) == 0 || !strings.Contains(text, "<") {
		return text
	}
	for _, v := range vars {
		text = strings.ReplaceAll(text, "<"+v.name+">", v.value)
	}
	return text
}

func concatTags(a, b []gherkin.Tag) []gherkin.Tag {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]gherkin.Tag, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func concatSteps(a, b []gherkin.Step) []gherkin.Step {
	if len(a) == 0 {
		return b
	}
	out := make([]gherkin.Step, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func pickleTags(tags []gherkin.Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{Name: t.Name, AstNodeID: t.Location.ID()})
	}
	return out
}
