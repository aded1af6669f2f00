package codec

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/RowanDark/devkit/internal/toolerr"
)

const upperhex = "0123456789ABCDEF"

// URLEncode percent-encodes s like encodeURIComponent: everything except
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped as UTF-8 octets.
func URLEncode(s string) string {
	return escapeComponent(s, false)
}

// URLEncodeComplete is URLEncode that also escapes ! ' ( ) *.
func URLEncodeComplete(s string) string {
	return escapeComponent(s, true)
}

// URLDecode reverses URLEncode and URLEncodeComplete. Malformed escape
// sequences and escapes that decode to invalid UTF-8 fail.
func URLDecode(s string) (string, error) {
	const op = "url.decode"
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindFormat, op, "malformed percent-encoding", err)
	}
	if !utf8.ValidString(decoded) {
		return "", toolerr.New(toolerr.KindFormat, op, "escape sequences do not form valid UTF-8")
	}
	return decoded, nil
}

func escapeComponent(s string, complete bool) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) && !(complete && isSubDelim(c)) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func isSubDelim(c byte) bool {
	switch c {
	case '!', '\'', '(', ')', '*':
		return true
	}
	return false
}
