package expression_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoBDD-Gherkin/internal/expression"
)

var _ = Describe("Registry", func() {
	var registry *expression.Registry

	BeforeEach(func() {
		var err error
		registry, err = expression.NewRegistry()
		Expect(err).ToNot(HaveOccurred())
	})

	// compile must succeed; match returns the raw arguments or nil.
	match := func(expr, text string) *expression.Match {
		compiled, err := registry.Compile(expr)
		Expect(err).ToNot(HaveOccurred())
		return compiled.Match(text)
	}

	Describe("built-in parameter types", func() {
		It("should match {int} including negatives", func() {
			m := match("I have {int} cukes", "I have 42 cukes")
			Expect(m).ToNot(BeNil())
			Expect(m.RawArguments).To(Equal([]string{"42"}))
			Expect(m.ParamTypeNames).To(Equal([]string{"int"}))

			Expect(match("I have {int} cukes", "I have -7 cukes")).ToNot(BeNil())
			Expect(match("I have {int} cukes", "I have many cukes")).To(BeNil())
		})

		It("should match {float} with and without a leading digit", func() {
			Expect(match("weight {float}", "weight 3.14").RawArguments).To(Equal([]string{"3.14"}))
			Expect(match("weight {float}", "weight .5").RawArguments).To(Equal([]string{".5"}))
			Expect(match("weight {float}", "weight -2").RawArguments).To(Equal([]string{"-2"}))
		})

		It("should strip quotes from {string}", func() {
			Expect(match(`a {string} name`, `a "quoted" name`).RawArguments).To(Equal([]string{"quoted"}))
			Expect(match(`a {string} name`, `a 'single' name`).RawArguments).To(Equal([]string{"single"}))
			Expect(match(`a {string} name`, `a bare name`)).To(BeNil())
		})

		It("should match {word} up to whitespace", func() {
			Expect(match("a {word} cat", "a grumpy cat").RawArguments).To(Equal([]string{"grumpy"}))
			Expect(match("a {word} cat", "a very grumpy cat")).To(BeNil())
		})

		It("should match {} as an anonymous span", func() {
			m := match("I see {}", "I see anything at all")
			Expect(m.RawArguments).To(Equal([]string{"anything at all"}))
			Expect(m.ParamTypeNames).To(Equal([]string{""}))
		})

		It("should capture placeholders in left-to-right order", func() {
			m := match("{word} pays {int} to {word}", "alice pays 30 to bob")
			Expect(m.RawArguments).To(Equal([]string{"alice", "30", "bob"}))
		})
	})

	Describe("optionals and alternation", func() {
		It("should make (text) optional", func() {
			Expect(match("I have {int} cuke(s)", "I have 1 cuke")).ToNot(BeNil())
			Expect(match("I have {int} cuke(s)", "I have 3 cukes")).ToNot(BeNil())
		})

		It("should treat a/b as word alternation", func() {
			Expect(match("a cat/dog appears", "a cat appears")).ToNot(BeNil())
			Expect(match("a cat/dog appears", "a dog appears")).ToNot(BeNil())
			Expect(match("a cat/dog appears", "a fish appears")).To(BeNil())
		})

		It("should support three-way alternation", func() {
			for _, animal := range []string{"cat", "dog", "fox"} {
				Expect(match("a cat/dog/fox appears", "a "+animal+" appears")).ToNot(BeNil())
			}
		})

		It("should keep an escaped slash literal", func() {
			Expect(match(`read/write a\/b mode`, "read a/b mode")).ToNot(BeNil())
			Expect(match(`read/write a\/b mode`, "read a mode")).To(BeNil())
		})

		It("should keep an escaped paren literal inside an optional", func() {
			Expect(match(`note( \(draft\))`, "note (draft)")).ToNot(BeNil())
			Expect(match(`note( \(draft\))`, "note")).ToNot(BeNil())
			Expect(match(`note( \(draft\))`, "note (draft")).To(BeNil())
		})

		It("should anchor the whole expression", func() {
			Expect(match("exactly this", "exactly this and more")).To(BeNil())
			Expect(match("exactly this", "prefix exactly this")).To(BeNil())
		})

		It("should quote regex metacharacters in literal text", func() {
			Expect(match("costs $5 (approx.)", "costs $5 approx.")).ToNot(BeNil())
			Expect(match("costs $5 (approx.)", "costs $5 approxx")).To(BeNil())
		})
	})

	Describe("compile-time errors", func() {
		It("should reject an undefined parameter type", func() {
			_, err := registry.Compile("I see {nonsuch}")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("nonsuch"))
		})

		It("should reject an unclosed placeholder", func() {
			_, err := registry.Compile("I see {int")
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unclosed optional", func() {
			_, err := registry.Compile("I see (maybe")
			Expect(err).To(HaveOccurred())
		})

		It("should reject an empty optional", func() {
			_, err := registry.Compile("I see ()")
			Expect(err).To(HaveOccurred())
		})

		It("should reject a trailing backslash", func() {
			_, err := registry.Compile(`I see \`)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("custom parameter types", func() {
		It("should register and match a custom type", func() {
			r, err := expression.NewRegistry(expression.ParameterType{
				Name: "color", Patterns: []string{"red|blue|green"},
			})
			Expect(err).ToNot(HaveOccurred())
			compiled, err := r.Compile("a {color} ball")
			Expect(err).ToNot(HaveOccurred())
			m := compiled.Match("a red ball")
			Expect(m).ToNot(BeNil())
			Expect(m.RawArguments).To(Equal([]string{"red"}))
			Expect(m.ParamTypeNames).To(Equal([]string{"color"}))
		})

		It("should keep one capture per placeholder when a custom pattern has groups", func() {
			r, err := expression.NewRegistry(expression.ParameterType{
				Name: "color", Patterns: []string{"(red|blue)"},
			})
			Expect(err).ToNot(HaveOccurred())
			compiled, err := r.Compile("a {color} ball costs {int}")
			Expect(err).ToNot(HaveOccurred())
			m := compiled.Match("a red ball costs 5")
			Expect(m).ToNot(BeNil())
			Expect(m.RawArguments).To(Equal([]string{"red", "5"}))
			Expect(m.ParamTypeNames).To(Equal([]string{"color", "int"}))
		})

		It("should join multiple patterns as alternatives", func() {
			r, err := expression.NewRegistry(expression.ParameterType{
				Name: "coin", Patterns: []string{"heads", "tails"},
			})
			Expect(err).ToNot(HaveOccurred())
			compiled, err := r.Compile("the coin shows {coin}")
			Expect(err).ToNot(HaveOccurred())
			Expect(compiled.Match("the coin shows heads")).ToNot(BeNil())
			Expect(compiled.Match("the coin shows tails")).ToNot(BeNil())
			Expect(compiled.Match("the coin shows edge")).To(BeNil())
		})

		It("should let a built-in silently win a name collision", func() {
			r, err := expression.NewRegistry(expression.ParameterType{
				Name: "int", Patterns: []string{"[a-z]+"},
			})
			Expect(err).ToNot(HaveOccurred())
			compiled, err := r.Compile("I have {int} cukes")
			Expect(err).ToNot(HaveOccurred())
			Expect(compiled.Match("I have 42 cukes")).ToNot(BeNil())
			Expect(compiled.Match("I have zzz cukes")).To(BeNil())
		})

		It("should keep the first of two same-named custom types", func() {
			r, err := expression.NewRegistry(
				expression.ParameterType{Name: "coin", Patterns: []string{"heads"}},
				expression.ParameterType{Name: "coin", Patterns: []string{"tails"}},
			)
			Expect(err).ToNot(HaveOccurred())
			compiled, err := r.Compile("{coin}")
			Expect(err).ToNot(HaveOccurred())
			Expect(compiled.Match("heads")).ToNot(BeNil())
			Expect(compiled.Match("tails")).To(BeNil())
		})

		It("should reject an invalid custom pattern at registration time", func() {
			_, err := expression.NewRegistry(expression.ParameterType{
				Name: "bad", Patterns: []string{"("},
			})
			Expect(err).To(HaveOccurred())
		})
	})
})
