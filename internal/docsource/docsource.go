// Package docsource extracts embedded Gherkin sources from Markdown
// documentation, so acceptance criteria written inside docs compile the
// same way standalone .feature files do.
package docsource

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/GoBDD-Gherkin/internal/domain"
)

// Block is one fenced ```gherkin block lifted out of a document.
type Block struct {
	// URI identifies the block as a virtual source: "<file>#<line>".
	URI string
	// Source is the verbatim Gherkin text of the block.
	Source string
	// Line is the 1-based line of the block's first content line.
	Line int
	// Context is the text of the nearest preceding heading.
	Context string
}

// infoLanguages are the fence info words treated as Gherkin.
var infoLanguages = map[string]bool{"gherkin": true, "feature": true}

// Extract walks a Markdown document and returns its Gherkin blocks in
// document order.
func Extract(filePath string, content []byte) ([]Block, error) {
	md := goldmark.New()
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	var blocks []Block
	var currentHeading string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			currentHeading = headingText(node, content)

		case *ast.FencedCodeBlock:
			lang := string(node.Language(content))
			if !infoLanguages[lang] || node.Lines().Len() == 0 {
				return ast.WalkContinue, nil
			}
			var buf bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(content))
			}
			line := lineNumber(content, lines.At(0).Start)
			blocks = append(blocks, Block{
				URI:     fmt.Sprintf("%s#%d", filePath, line),
				Source:  buf.String(),
				Line:    line,
				Context: currentHeading,
			})
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, domain.NewError("docsource", filePath, 0, "failed to walk markdown AST", err)
	}

	return blocks, nil
}

// headingText gets the text content of a heading node.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
