package textops

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// ReplaceOptions controls FindReplace. With Regex unset the search text and
// the replacement are both literal.
type ReplaceOptions struct {
	Global     bool
	IgnoreCase bool
	Regex      bool
}

// DefaultReplaceOptions replaces every literal, case-sensitive match.
func DefaultReplaceOptions() ReplaceOptions {
	return ReplaceOptions{Global: true}
}

// FindReplace replaces matches of search in text. In regex mode the
// replacement may reference groups as $1 or ${name}. An empty literal
// search leaves text unchanged.
func FindReplace(text, search, replace string, opts ReplaceOptions) (string, error) {
	const op = "text.replace"
	if !opts.Regex && search == "" {
		return text, nil
	}

	pattern := search
	if !opts.Regex {
		pattern = regexp.QuoteMeta(search)
	}
	if opts.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "invalid pattern", err)
	}

	if opts.Global {
		if opts.Regex {
			return re.ReplaceAllString(text, replace), nil
		}
		return re.ReplaceAllLiteralString(text, replace), nil
	}

	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil
	}
	var sb strings.Builder
	sb.WriteString(text[:loc[0]])
	if opts.Regex {
		sb.Write(re.ExpandString(nil, replace, text, loc))
	} else {
		sb.WriteString(replace)
	}
	sb.WriteString(text[loc[1]:])
	return sb.String(), nil
}

// CleanOptions toggles the Clean filters.
type CleanOptions struct {
	RemoveSpaces       bool
	RemoveLineBreaks   bool
	RemoveSpecialChars bool
	RemovePunctuation  bool
	RemoveNumbers      bool
}

// Punctuation is the set RemovePunctuation strips.
const Punctuation = ".,/#!$%^&*;:{}=-_`~()"

// Clean applies the enabled filters in a fixed order: whitespace, line
// breaks, special characters, punctuation, digits. Special characters are
// anything other than letters, digits, underscore and whitespace. Digits
// are ASCII 0-9 only.
func Clean(text string, opts CleanOptions) string {
	out := text
	if opts.RemoveSpaces {
		out = strings.Map(dropIf(unicode.IsSpace), out)
	}
	if opts.RemoveLineBreaks {
		out = strings.Map(dropIf(func(r rune) bool { return r == '\n' || r == '\r' }), out)
	}
	if opts.RemoveSpecialChars {
		out = strings.Map(dropIf(func(r rune) bool { return !isWordRune(r) && !unicode.IsSpace(r) }), out)
	}
	if opts.RemovePunctuation {
		out = strings.Map(dropIf(func(r rune) bool { return strings.ContainsRune(Punctuation, r) }), out)
	}
	if opts.RemoveNumbers {
		out = strings.Map(dropIf(func(r rune) bool { return r >= '0' && r <= '9' }), out)
	}
	return out
}

func dropIf(pred func(rune) bool) func(rune) rune {
	return func(r rune) rune {
		if pred(r) {
			return -1
		}
		return r
	}
}
