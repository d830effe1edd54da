package gherkin_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoBDD-Gherkin/internal/gherkin"
	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

// tokenTypes strips a token stream down to its type sequence.
func tokenTypes(tokens []gherkin.Token) []gherkin.TokenType {
	types := make([]gherkin.TokenType, 0, len(tokens))
	for _, t := range tokens {
		types = append(types, t.Type)
	}
	return types
}

var _ = Describe("Tokenize", func() {
	It("should end every stream with exactly one EOF token", func() {
		tokens := gherkin.Tokenize("", nil)
		Expect(tokens).To(HaveLen(1))
		Expect(tokens[0].Type).To(Equal(gherkin.TokenEOF))
	})

	It("should classify blank lines as empty tokens", func() {
		tokens := gherkin.Tokenize("\n   \n", nil)
		Expect(tokenTypes(tokens)).To(Equal([]gherkin.TokenType{
			gherkin.TokenEmpty, gherkin.TokenEmpty, gherkin.TokenEOF,
		}))
	})

	It("should lex a feature header with its title", func() {
		tokens := gherkin.Tokenize("Feature: Withdrawals", nil)
		Expect(tokens[0].Type).To(Equal(gherkin.TokenFeatureLine))
		Expect(tokens[0].Keyword).To(Equal("Feature"))
		Expect(tokens[0].Text).To(Equal("Withdrawals"))
		Expect(tokens[0].Location).To(Equal(gherkin.Location{Line: 1, Column: 1}))
	})

	It("should record the column of indented keywords", func() {
		tokens := gherkin.Tokenize("  Scenario: indented", nil)
		Expect(tokens[0].Location.Column).To(Equal(3))
	})

	It("should prefer the longest keyword match", func() {
		tokens := gherkin.Tokenize("Scenario Outline: expanded", nil)
		Expect(tokens[0].Type).To(Equal(gherkin.TokenScenarioLine))
		Expect(tokens[0].Keyword).To(Equal("Scenario Outline"))
		Expect(tokens[0].Outline).To(BeTrue())
	})

	It("should keep the trailing space on step keywords", func() {
		tokens := gherkin.Tokenize("Given a bank account", nil)
		Expect(tokens[0].Type).To(Equal(gherkin.TokenStepLine))
		Expect(tokens[0].Keyword).To(Equal("Given "))
		Expect(tokens[0].Text).To(Equal("a bank account"))
		Expect(tokens[0].KeywordType).To(Equal(language.KeywordTypeContext))
	})

	It("should classify step keyword types", func() {
		source := "Given a\nWhen b\nThen c\nAnd d\nBut e\n* f"
		tokens := gherkin.Tokenize(source, nil)
		Expect(tokens[0].KeywordType).To(Equal(language.KeywordTypeContext))
		Expect(tokens[1].KeywordType).To(Equal(language.KeywordTypeAction))
		Expect(tokens[2].KeywordType).To(Equal(language.KeywordTypeOutcome))
		Expect(tokens[3].KeywordType).To(Equal(language.KeywordTypeConjunction))
		Expect(tokens[4].KeywordType).To(Equal(language.KeywordTypeConjunction))
		Expect(tokens[5].KeywordType).To(Equal(language.KeywordTypeUnknown))
	})

	It("should treat unrecognized lines as other tokens, never failing", func() {
		tokens := gherkin.Tokenize("this is just prose", nil)
		Expect(tokens[0].Type).To(Equal(gherkin.TokenOther))
		Expect(tokens[0].Text).To(Equal("this is just prose"))
	})

	Describe("language directive", func() {
		It("should switch keyword recognition when it is the first non-empty line", func() {
			source := "# language: es\nCaracterística: Retiros\n  Escenario: simple\n    Dado algo"
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[0].Type).To(Equal(gherkin.TokenLanguage))
			Expect(tokens[0].Text).To(Equal("es"))
			Expect(tokens[1].Type).To(Equal(gherkin.TokenFeatureLine))
			Expect(tokens[2].Type).To(Equal(gherkin.TokenScenarioLine))
			Expect(tokens[3].Type).To(Equal(gherkin.TokenStepLine))
			Expect(tokens[3].Keyword).To(Equal("Dado "))
		})

		It("should ignore a directive after the first non-empty line", func() {
			source := "Feature: F\n# language: es\nCaracterística: tarde"
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[1].Type).To(Equal(gherkin.TokenComment))
			Expect(tokens[2].Type).To(Equal(gherkin.TokenOther))
		})

		It("should allow blank lines and nothing else before the directive", func() {
			source := "\n\n# language: fr\nFonctionnalité: Retraits"
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[2].Type).To(Equal(gherkin.TokenLanguage))
			Expect(tokens[3].Type).To(Equal(gherkin.TokenFeatureLine))
		})
	})

	Describe("tag lines", func() {
		It("should split tags with their columns", func() {
			tokens := gherkin.Tokenize("@smoke  @slow", nil)
			Expect(tokens[0].Type).To(Equal(gherkin.TokenTagLine))
			Expect(tokens[0].Spans).To(HaveLen(2))
			Expect(tokens[0].Spans[0].Value).To(Equal("@smoke"))
			Expect(tokens[0].Spans[0].Location.Column).To(Equal(1))
			Expect(tokens[0].Spans[1].Value).To(Equal("@slow"))
			Expect(tokens[0].Spans[1].Location.Column).To(Equal(9))
		})

		It("should drop a trailing comment on a tag line", func() {
			tokens := gherkin.Tokenize("@smoke # nightly only", nil)
			Expect(tokens[0].Spans).To(HaveLen(1))
			Expect(tokens[0].Spans[0].Value).To(Equal("@smoke"))
		})
	})

	Describe("table rows", func() {
		It("should split cells and trim their whitespace", func() {
			tokens := gherkin.Tokenize("  | one | two |", nil)
			Expect(tokens[0].Type).To(Equal(gherkin.TokenTableRow))
			Expect(tokens[0].Spans).To(HaveLen(2))
			Expect(tokens[0].Spans[0].Value).To(Equal("one"))
			Expect(tokens[0].Spans[1].Value).To(Equal("two"))
		})

		It("should decode cell escapes", func() {
			tokens := gherkin.Tokenize(`| a\|b | c\nd | e\\f |`, nil)
			Expect(tokens[0].Spans[0].Value).To(Equal("a|b"))
			Expect(tokens[0].Spans[1].Value).To(Equal("c\nd"))
			Expect(tokens[0].Spans[2].Value).To(Equal(`e\f`))
		})

		It("should keep unknown escapes verbatim", func() {
			tokens := gherkin.Tokenize(`| a\qb |`, nil)
			Expect(tokens[0].Spans[0].Value).To(Equal(`a\qb`))
		})

		It("should round-trip any cell value through EscapeCell", func() {
			values := []string{"plain", "pi|pe", `back\slash`, "new\nline", `all\|of\nthem\\`}
			for _, value := range values {
				row := "| " + gherkin.EscapeCell(value) + " |"
				tokens := gherkin.Tokenize(row, nil)
				Expect(tokens[0].Spans[0].Value).To(Equal(value), "value %q", value)
			}
		})
	})

	Describe("doc strings", func() {
		It("should lex fences and verbatim content", func() {
			source := "\"\"\"json\n  {\"a\": 1}\n\"\"\""
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[0].Type).To(Equal(gherkin.TokenDocStringSeparator))
			Expect(tokens[0].Delimiter).To(Equal(`"""`))
			Expect(tokens[0].MediaType).To(Equal("json"))
			Expect(tokens[1].Type).To(Equal(gherkin.TokenDocStringContent))
			Expect(tokens[1].Text).To(Equal("  {\"a\": 1}"))
			Expect(tokens[2].Type).To(Equal(gherkin.TokenDocStringSeparator))
		})

		It("should not close a quote fence with a backtick fence", func() {
			source := "\"\"\"\n```\nstill content\n\"\"\""
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[1].Type).To(Equal(gherkin.TokenDocStringContent))
			Expect(tokens[1].Text).To(Equal("```"))
			Expect(tokens[3].Type).To(Equal(gherkin.TokenDocStringSeparator))
		})

		It("should suspend keyword recognition inside the block", func() {
			source := "```\nGiven not a step\nFeature: not a feature\n```"
			tokens := gherkin.Tokenize(source, nil)
			Expect(tokens[1].Type).To(Equal(gherkin.TokenDocStringContent))
			Expect(tokens[2].Type).To(Equal(gherkin.TokenDocStringContent))
		})
	})
})
