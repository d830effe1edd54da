package language_test

import (
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoBDD-Gherkin/internal/language"
)

var _ = Describe("Language", func() {
	It("should bundle the default English dialect", func() {
		lang := language.Default()
		Expect(lang.Code).To(Equal("en"))
		Expect(lang.Feature).To(ContainElement("Feature"))
		Expect(lang.Given).To(ContainElement("Given "))
	})

	It("should look up bundled dialects by code", func() {
		lang, ok := language.Lookup("es")
		Expect(ok).To(BeTrue())
		Expect(lang.Feature).To(ContainElement("Característica"))

		_, ok = language.Lookup("tlh")
		Expect(ok).To(BeFalse())
	})

	It("should list bundled codes sorted", func() {
		codes := language.Codes()
		Expect(codes).To(ContainElements("de", "en", "en-pirate", "es", "fr"))
		Expect(sort.StringsAreSorted(codes)).To(BeTrue())
	})

	It("should order step keywords longest first", func() {
		kws := language.Default().StepKeywords()
		Expect(kws).ToNot(BeEmpty())
		for i := 1; i < len(kws); i++ {
			Expect(len(kws[i-1])).To(BeNumerically(">=", len(kws[i])))
		}
	})

	It("should classify step keyword types", func() {
		lang := language.Default()
		Expect(lang.StepKeywordType("Given ")).To(Equal(language.KeywordTypeContext))
		Expect(lang.StepKeywordType("When ")).To(Equal(language.KeywordTypeAction))
		Expect(lang.StepKeywordType("Then ")).To(Equal(language.KeywordTypeOutcome))
		Expect(lang.StepKeywordType("And ")).To(Equal(language.KeywordTypeConjunction))
		Expect(lang.StepKeywordType("But ")).To(Equal(language.KeywordTypeConjunction))
		Expect(lang.StepKeywordType("* ")).To(Equal(language.KeywordTypeUnknown))
		Expect(lang.StepKeywordType("Never ")).To(Equal(language.KeywordTypeUnknown))
	})
})
