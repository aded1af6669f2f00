package jsondata

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Kind is the JSON type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Value is a parsed JSON node. Objects keep their keys in source order.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Items  []*Value
	Fields *orderedmap.OrderedMap[string, *Value]
}

func newObject() *Value {
	return &Value{Kind: Object, Fields: orderedmap.New[string, *Value]()}
}

// Parse decodes a single JSON document. A repeated object key keeps the
// position of its first occurrence and the value of its last.
func Parse(data string) (*Value, error) {
	const op = "json.parse"
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, toolerr.Syntax(op, err.Error(), -1, err)
	}
	return v, nil
}

// checkSyntax validates the whole document, including trailing data, and
// converts the decoder's byte offset into a rune offset.
func checkSyntax(data string) error {
	err := json.Unmarshal([]byte(data), new(json.RawMessage))
	if err == nil {
		return nil
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off := int(se.Offset)
		// Offset counts the offending byte itself, except at end of input.
		if off > 0 && off <= len(data) && !strings.Contains(se.Error(), "end of JSON input") {
			off--
		}
		if off > len(data) {
			off = len(data)
		}
		return toolerr.Syntax("json.parse", se.Error(), utf8.RuneCountInString(data[:off]), err)
	}
	return toolerr.Syntax("json.parse", err.Error(), -1, err)
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return &Value{Kind: Null}, nil
	case bool:
		return &Value{Kind: Bool, Bool: t}, nil
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		return &Value{Kind: Number, Number: f}, nil
	case string:
		return &Value{Kind: String, Str: t}, nil
	case json.Delim:
		switch t {
		case '[':
			arr := &Value{Kind: Array, Items: []*Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			obj := newObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Fields.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, errors.New("unexpected token")
}

// Encode serialises v. An indent of 0 produces compact output; otherwise
// nested values are indented by that many spaces per level.
func (v *Value) Encode(indent int) string {
	var buf bytes.Buffer
	writeValue(&buf, v, indent, 0)
	return buf.String()
}

func writeValue(w *bytes.Buffer, v *Value, indent, level int) {
	switch v.Kind {
	case Null:
		w.WriteString("null")
	case Bool:
		w.WriteString(strconv.FormatBool(v.Bool))
	case Number:
		w.WriteString(formatNumber(v.Number))
	case String:
		writeString(w, v.Str)
	case Array:
		if len(v.Items) == 0 {
			w.WriteString("[]")
			return
		}
		w.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				w.WriteByte(',')
			}
			newline(w, indent, level+1)
			writeValue(w, item, indent, level+1)
		}
		newline(w, indent, level)
		w.WriteByte(']')
	case Object:
		if v.Fields.Len() == 0 {
			w.WriteString("{}")
			return
		}
		w.WriteByte('{')
		first := true
		for pair := v.Fields.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				w.WriteByte(',')
			}
			first = false
			newline(w, indent, level+1)
			writeString(w, pair.Key)
			w.WriteByte(':')
			if indent > 0 {
				w.WriteByte(' ')
			}
			writeValue(w, pair.Value, indent, level+1)
		}
		newline(w, indent, level)
		w.WriteByte('}')
	}
}

func newline(w *bytes.Buffer, indent, level int) {
	if indent <= 0 {
		return
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(" ", indent*level))
}

const hexDigits = "0123456789abcdef"

// writeString quotes s the way JSON.stringify does: no HTML escaping and
// only control characters, quote and backslash escaped.
func writeString(w *bytes.Buffer, s string) {
	w.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		case '\b':
			w.WriteString(`\b`)
		case '\f':
			w.WriteString(`\f`)
		case '\n':
			w.WriteString(`\n`)
		case '\r':
			w.WriteString(`\r`)
		case '\t':
			w.WriteString(`\t`)
		default:
			if r < 0x20 {
				w.WriteString(`\u00`)
				w.WriteByte(hexDigits[r>>4])
				w.WriteByte(hexDigits[r&0xf])
				continue
			}
			w.WriteRune(r)
		}
	}
	w.WriteByte('"')
}

// formatNumber renders f like JavaScript's Number#toString. Values outside
// the float64 range become null, as JSON.stringify does for Infinity.
func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
