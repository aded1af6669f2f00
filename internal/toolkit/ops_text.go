package toolkit

import (
	"github.com/RowanDark/devkit/internal/textops"
)

type caseParams struct {
	Case string `json:"case" validate:"required,oneof=upper lower title camel pascal snake kebab" jsonschema:"required,enum=upper,enum=lower,enum=title,enum=camel,enum=pascal,enum=snake,enum=kebab"`
}

type dedupeParams struct {
	Unit string `json:"unit" validate:"oneof=lines words" jsonschema:"enum=lines,enum=words,default=lines"`
}

type sortParams struct {
	Unit   string `json:"unit" validate:"oneof=lines words" jsonschema:"enum=lines,enum=words,default=lines"`
	Order  string `json:"order" validate:"oneof=asc desc" jsonschema:"enum=asc,enum=desc,default=asc"`
	Locale string `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag" jsonschema:"description=BCP 47 collation locale"`
}

type replaceParams struct {
	Search     string `json:"search" jsonschema:"required"`
	Replace    string `json:"replace"`
	Global     bool   `json:"global" jsonschema:"default=true"`
	IgnoreCase bool   `json:"ignore_case,omitempty"`
	Regex      bool   `json:"regex,omitempty"`
}

type cleanParams struct {
	Spaces       bool `json:"spaces,omitempty" jsonschema:"description=Remove all whitespace"`
	LineBreaks   bool `json:"line_breaks,omitempty"`
	SpecialChars bool `json:"special_chars,omitempty" jsonschema:"description=Remove anything but letters digits underscore and whitespace"`
	Punctuation  bool `json:"punctuation,omitempty"`
	Numbers      bool `json:"numbers,omitempty"`
}

func init() {
	stats := simpleOp("text_stats", CategoryText, "Count characters, words, lines and paragraphs",
		func(in []byte) ([]byte, error) {
			return jsonResult(textops.GetStatistics(string(in)))
		})

	changeCase := newOp("text_case", CategoryText, "Convert text case",
		caseParams{},
		func(in []byte, p caseParams) ([]byte, error) {
			return text(textops.ChangeCase(string(in), textops.Case(p.Case)))
		})

	dedupe := newOp("text_dedupe", CategoryText, "Remove repeated lines or words keeping first occurrences",
		dedupeParams{Unit: string(textops.Lines)},
		func(in []byte, p dedupeParams) ([]byte, error) {
			return text(textops.Deduplicate(string(in), textops.Unit(p.Unit)))
		})

	sortText := newOp("text_sort", CategoryText, "Sort lines or words with locale-aware collation",
		sortParams{Unit: string(textops.Lines), Order: string(textops.Asc)},
		func(in []byte, p sortParams) ([]byte, error) {
			return text(textops.Sort(string(in), textops.Unit(p.Unit), textops.Order(p.Order), p.Locale))
		})

	replace := newOp("text_replace", CategoryText, "Find and replace literal text or a regular expression",
		replaceParams{Global: true},
		func(in []byte, p replaceParams) ([]byte, error) {
			opts := textops.ReplaceOptions{Global: p.Global, IgnoreCase: p.IgnoreCase, Regex: p.Regex}
			return text(textops.FindReplace(string(in), p.Search, p.Replace, opts))
		})

	clean := newOp("text_clean", CategoryText, "Strip whitespace, punctuation, special characters or digits",
		cleanParams{},
		func(in []byte, p cleanParams) ([]byte, error) {
			return []byte(textops.Clean(string(in), textops.CleanOptions{
				RemoveSpaces:       p.Spaces,
				RemoveLineBreaks:   p.LineBreaks,
				RemoveSpecialChars: p.SpecialChars,
				RemovePunctuation:  p.Punctuation,
				RemoveNumbers:      p.Numbers,
			})), nil
		})

	mustRegister(stats, changeCase, dedupe, sortText, replace, clean)
}
