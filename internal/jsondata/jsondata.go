// Package jsondata formats, validates and inspects JSON documents.
//
// Every operation re-parses its input in full; there is no line-based
// recovery. Object key order is preserved and numbers are printed the way
// JavaScript prints them, so Format(Minify(x), n) == Format(x, n).
package jsondata

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// MaxIndent is the largest indent Format honours.
const MaxIndent = 10

// Format re-serialises data with indent spaces per level. Indent is clamped
// to [0, MaxIndent]; 0 is the same as Minify.
func Format(data string, indent int) (string, error) {
	v, err := Parse(data)
	if err != nil {
		return "", err
	}
	return v.Encode(clampIndent(indent)), nil
}

// Minify re-serialises data without insignificant whitespace.
func Minify(data string) (string, error) {
	return Format(data, 0)
}

func clampIndent(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxIndent {
		return MaxIndent
	}
	return n
}

// ValidationResult reports whether a document parses. Position is the rune
// offset of the failure when the parser reports one.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Validate never fails; parse errors are reported in the result.
func Validate(data string) ValidationResult {
	err := checkSyntax(data)
	if err == nil {
		return ValidationResult{Valid: true}
	}
	res := ValidationResult{Valid: false}
	var te *toolerr.Error
	if errors.As(err, &te) {
		res.Error = te.Message
		if te.Position >= 0 {
			pos := te.Position
			res.Position = &pos
		}
	} else {
		res.Error = err.Error()
	}
	return res
}

// Escape returns s as a quoted JSON string literal.
func Escape(s string) string {
	return (&Value{Kind: String, Str: s}).Encode(0)
}

// Unescape decodes a quoted JSON string literal.
func Unescape(literal string) (string, error) {
	const op = "json.unescape"
	trimmed := strings.TrimSpace(literal)
	if err := checkSyntax(trimmed); err != nil {
		return "", err
	}
	if !strings.HasPrefix(trimmed, `"`) {
		return "", toolerr.Syntax(op, "input is not a JSON string literal", 0, nil)
	}
	var out string
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return "", toolerr.Syntax(op, err.Error(), -1, err)
	}
	return out, nil
}

// Statistics summarises a JSON document. Depth counts container nesting
// with the root at 0; scalars never raise it.
type Statistics struct {
	Size     int `json:"size"`
	Lines    int `json:"lines"`
	Depth    int `json:"depth"`
	Keys     int `json:"keys"`
	Arrays   int `json:"arrays"`
	Objects  int `json:"objects"`
	Strings  int `json:"strings"`
	Numbers  int `json:"numbers"`
	Booleans int `json:"booleans"`
	Nulls    int `json:"nulls"`
	// Nodes is the number of values visited, one per node.
	Nodes int `json:"nodes"`
}

// GetStatistics parses data and walks every node once, depth first.
// Size is the UTF-8 byte length of data and Lines is one more than its
// number of newlines.
func GetStatistics(data string) (Statistics, error) {
	v, err := Parse(data)
	if err != nil {
		return Statistics{}, err
	}
	stats := Statistics{
		Size:  len(data),
		Lines: strings.Count(data, "\n") + 1,
	}
	stats.walk(v, 0)
	return stats, nil
}

func (s *Statistics) walk(v *Value, depth int) {
	s.Nodes++
	switch v.Kind {
	case Array:
		s.Arrays++
		s.raise(depth)
		for _, item := range v.Items {
			s.walk(item, depth+1)
		}
	case Object:
		s.Objects++
		s.raise(depth)
		for pair := v.Fields.Oldest(); pair != nil; pair = pair.Next() {
			s.Keys++
			s.walk(pair.Value, depth+1)
		}
	case String:
		s.Strings++
	case Number:
		s.Numbers++
	case Bool:
		s.Booleans++
	case Null:
		s.Nulls++
	}
}

func (s *Statistics) raise(depth int) {
	if depth > s.Depth {
		s.Depth = depth
	}
}
