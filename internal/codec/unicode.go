package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// CodePointRecord describes one Unicode scalar value of a text.
type CodePointRecord struct {
	Char      string `json:"char"`
	CodePoint uint32 `json:"code_point"`
	Unicode   string `json:"unicode"`
	Hex       string `json:"hex"`
	Decimal   string `json:"decimal"`
}

// CharToUnicode returns the U+XXXX form of the first rune of s, or "" for an
// empty string.
func CharToUnicode(s string) string {
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicodeForm(r)
}

// TextToUnicode returns one record per rune of s, in order.
func TextToUnicode(s string) []CodePointRecord {
	records := make([]CodePointRecord, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		records = append(records, CodePointRecord{
			Char:      string(r),
			CodePoint: uint32(r),
			Unicode:   unicodeForm(r),
			Hex:       fmt.Sprintf("0x%X", r),
			Decimal:   strconv.FormatUint(uint64(r), 10),
		})
	}
	return records
}

// UnicodeToChar parses a hexadecimal code point with an optional U+ prefix
// and returns the character it names.
func UnicodeToChar(s string) (string, error) {
	const op = "unicode.to_char"
	payload := strings.TrimSpace(s)
	if len(payload) >= 2 && (payload[:2] == "U+" || payload[:2] == "u+") {
		payload = payload[2:]
	}
	if payload == "" {
		return "", toolerr.New(toolerr.KindFormat, op, "empty code point")
	}
	n, err := strconv.ParseUint(payload, 16, 32)
	if err != nil {
		return "", toolerr.Newf(toolerr.KindFormat, op, "invalid hexadecimal code point %q", payload)
	}
	if !utf8.ValidRune(rune(n)) {
		return "", toolerr.Newf(toolerr.KindFormat, op, "U+%X is not a Unicode scalar value", n)
	}
	return string(rune(n)), nil
}

// TextToUTF8Bytes returns the UTF-8 encoding of s.
func TextToUTF8Bytes(s string) []byte {
	return []byte(s)
}

// UTF8BytesToText decodes b, which must be valid UTF-8.
func UTF8BytesToText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", toolerr.New(toolerr.KindFormat, "unicode.from_utf8", "byte sequence is not valid UTF-8")
	}
	return string(b), nil
}

// NormalizationForm names a Unicode normalization form.
type NormalizationForm string

const (
	NFC  NormalizationForm = "NFC"
	NFD  NormalizationForm = "NFD"
	NFKC NormalizationForm = "NFKC"
	NFKD NormalizationForm = "NFKD"
)

// Normalize converts s to the given normalization form.
func Normalize(s string, form NormalizationForm) (string, error) {
	var f norm.Form
	switch NormalizationForm(strings.ToUpper(string(form))) {
	case NFC:
		f = norm.NFC
	case NFD:
		f = norm.NFD
	case NFKC:
		f = norm.NFKC
	case NFKD:
		f = norm.NFKD
	default:
		return "", toolerr.Newf(toolerr.KindInvalidArgument, "unicode.normalize", "unsupported normalization form %q", form)
	}
	return f.String(s), nil
}

func unicodeForm(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
