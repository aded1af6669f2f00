package codec

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var htmlEncoder = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
)

var htmlDecodeTable = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&#39;":  "'",
	"&#x2F;": "/",
	"&nbsp;": " ",
}

var entityPattern = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)

// HTMLEncode replaces & < > " ' / with their entities.
func HTMLEncode(s string) string {
	return htmlEncoder.Replace(s)
}

// HTMLDecode reverses HTMLEncode and decodes numeric entities. Unknown
// named entities and numeric entities that do not name a Unicode scalar
// value are left as they are.
func HTMLDecode(s string) string {
	return entityPattern.ReplaceAllStringFunc(s, func(entity string) string {
		if plain, ok := htmlDecodeTable[entity]; ok {
			return plain
		}
		if !strings.HasPrefix(entity, "&#") {
			return entity
		}
		body := entity[2 : len(entity)-1]
		base := 10
		if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
			body, base = body[1:], 16
		}
		n, err := strconv.ParseUint(body, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return entity
		}
		return string(rune(n))
	})
}
