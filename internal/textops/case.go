package textops

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Case names a case conversion.
type Case string

const (
	Upper  Case = "upper"
	Lower  Case = "lower"
	Title  Case = "title"
	Camel  Case = "camel"
	Pascal Case = "pascal"
	Snake  Case = "snake"
	Kebab  Case = "kebab"
)

// Cases lists every supported conversion.
var Cases = []Case{Upper, Lower, Title, Camel, Pascal, Snake, Kebab}

// ParseCase resolves a case-insensitive conversion name.
func ParseCase(name string) (Case, error) {
	c := Case(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Cases {
		if c == known {
			return c, nil
		}
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "text.case", "unsupported case %q", name)
}

// ChangeCase converts text. Title upper-cases the first character of each
// whitespace-delimited token that starts with a word character and
// lower-cases the rest of it. Camel, pascal, snake and kebab first split
// text into words (see SplitWords) and rejoin them.
func ChangeCase(text string, c Case) (string, error) {
	switch c {
	case Upper:
		return cases.Upper(language.Und).String(text), nil
	case Lower:
		return cases.Lower(language.Und).String(text), nil
	case Title:
		return titleCase(text), nil
	case Camel, Pascal:
		words := SplitWords(text)
		var sb strings.Builder
		for i, w := range words {
			if i == 0 && c == Camel {
				sb.WriteString(strings.ToLower(w))
				continue
			}
			sb.WriteString(capitalize(w))
		}
		return sb.String(), nil
	case Snake, Kebab:
		sep := "_"
		if c == Kebab {
			sep = "-"
		}
		words := SplitWords(text)
		for i := range words {
			words[i] = strings.ToLower(words[i])
		}
		return strings.Join(words, sep), nil
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "text.case", "unsupported case %q", c)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func titleCase(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inToken := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			inToken = false
			sb.WriteRune(r)
		case inToken:
			sb.WriteRune(unicode.ToLower(r))
		case isWordRune(r):
			inToken = true
			sb.WriteRune(unicode.ToTitle(r))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(w[size:])
}

// SplitWords breaks text into words for identifier-style cases. Any rune
// that is not a letter or digit separates words, and a new word starts at
// a lower-to-upper transition or at the last capital of an acronym, so
// "parseXMLHttpRequest" yields parse, XML, Http, Request.
func SplitWords(text string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(text)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
