// Package textops implements text statistics, case conversion, line and
// word deduplication, sorting, find/replace and cleaning filters.
package textops

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Statistics describes a text. Characters counts Unicode scalar values,
// Graphemes counts user-perceived characters and DisplayWidth is the
// monospace column width of the widest line.
type Statistics struct {
	Characters         int `json:"characters"`
	CharactersNoSpaces int `json:"characters_no_spaces"`
	Words              int `json:"words"`
	Lines              int `json:"lines"`
	Paragraphs         int `json:"paragraphs"`
	Bytes              int `json:"bytes"`
	Graphemes          int `json:"graphemes"`
	DisplayWidth       int `json:"display_width"`
}

// GetStatistics computes Statistics for text. Lines is one more than the
// number of newlines; paragraphs are blocks separated by a blank line that
// contain something other than whitespace.
func GetStatistics(text string) Statistics {
	stats := Statistics{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
		Lines:      strings.Count(text, "\n") + 1,
		Bytes:      len(text),
		Graphemes:  uniseg.GraphemeClusterCount(text),
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			stats.CharactersNoSpaces++
		}
	}
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) != "" {
			stats.Paragraphs++
		}
	}
	for _, line := range strings.Split(text, "\n") {
		stats.DisplayWidth = max(stats.DisplayWidth, runewidth.StringWidth(line))
	}
	return stats
}

// Unit selects whether an operation works on lines or words.
type Unit string

const (
	Lines Unit = "lines"
	Words Unit = "words"
)

// ParseUnit resolves a unit name. Empty means Lines.
func ParseUnit(name string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(name))) {
	case "", Lines:
		return Lines, nil
	case Words:
		return Words, nil
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "text.unit", "unsupported unit %q", name)
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder resolves an order name. Empty means Asc.
func ParseOrder(name string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(name))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "text.order", "unsupported order %q", name)
}

// split breaks text into units. Words are separated by Unicode whitespace
// and empty tokens are dropped; lines keep empty entries.
func split(text string, unit Unit) ([]string, string, error) {
	switch unit {
	case Lines:
		return strings.Split(text, "\n"), "\n", nil
	case Words:
		return strings.Fields(text), " ", nil
	}
	return nil, "", toolerr.Newf(toolerr.KindInvalidArgument, "text.unit", "unsupported unit %q", unit)
}

// Deduplicate removes repeated lines or words, keeping the first occurrence
// of each in its original order.
func Deduplicate(text string, unit Unit) (string, error) {
	parts, sep, err := split(text, unit)
	if err != nil {
		return "", err
	}
	seen := make(map[string]struct{}, len(parts))
	out := parts[:0:0]
	for _, p := range parts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return strings.Join(out, sep), nil
}

// Sort orders lines or words with the collation rules of locale, a BCP 47
// tag. An empty locale uses the root collation.
func Sort(text string, unit Unit, order Order, locale string) (string, error) {
	const op = "text.sort"
	parts, sep, err := split(text, unit)
	if err != nil {
		return "", err
	}
	if order != Asc && order != Desc {
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported order %q", order)
	}
	tag := language.Und
	if strings.TrimSpace(locale) != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "invalid locale", err)
		}
	}
	c := collate.New(tag)
	sort.SliceStable(parts, func(i, j int) bool {
		cmp := c.CompareString(parts[i], parts[j])
		if order == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return strings.Join(parts, sep), nil
}
