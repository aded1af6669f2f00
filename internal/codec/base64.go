package codec

import (
	"encoding/base64"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// DefaultMIMEType tags decoded blobs when the caller supplies none.
const DefaultMIMEType = "application/octet-stream"

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Blob is a decoded binary payload tagged with a MIME type.
type Blob struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// EncodeText encodes the UTF-8 bytes of s as standard Base64.
func EncodeText(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeText reverses EncodeText. The decoded bytes must be valid UTF-8.
func DecodeText(s string) (string, error) {
	const op = "base64.decode_text"
	data, err := decodeBase64(op, s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", toolerr.New(toolerr.KindFormat, op, "decoded bytes are not valid UTF-8")
	}
	return string(data), nil
}

// ValidateBase64 reports whether s is syntactically Base64: the standard
// alphabet, at most two padding characters and a length divisible by four.
// A true result does not guarantee that s decodes.
func ValidateBase64(s string) bool {
	return len(s)%4 == 0 && base64Pattern.MatchString(s)
}

// EncodeFile reads r to the end and returns its Base64 encoding.
func EncodeFile(r io.Reader) (string, error) {
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, "base64.encode_file", "read input", err)
	}
	if err := enc.Close(); err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, "base64.encode_file", "flush encoder", err)
	}
	return sb.String(), nil
}

// EncodeFilePath opens path and encodes its exact byte content.
func EncodeFilePath(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, "base64.encode_file", "open file", err)
	}
	defer f.Close()
	return EncodeFile(f)
}

// DecodeToBlob decodes s into a byte buffer of the exact decoded length.
// An empty mimeType defaults to DefaultMIMEType.
func DecodeToBlob(s, mimeType string) (Blob, error) {
	data, err := decodeBase64("base64.decode_blob", s)
	if err != nil {
		return Blob{}, err
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = DefaultMIMEType
	}
	return Blob{Data: data, MIMEType: mimeType, Size: len(data)}, nil
}

// decodeBase64 mirrors browser atob: ASCII whitespace is ignored and padding
// may be omitted.
func decodeBase64(op, s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, s)
	if len(cleaned)%4 == 0 {
		cleaned = strings.TrimSuffix(cleaned, "=")
		cleaned = strings.TrimSuffix(cleaned, "=")
	}
	data, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.KindFormat, op, "input is not valid Base64", err)
	}
	return data, nil
}

// EncodeBase64URL encodes data with the URL-safe alphabet and padding.
func EncodeBase64URL(data []byte) string {
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeBase64URL decodes URL-safe Base64 with or without padding.
func DecodeBase64URL(s string) ([]byte, error) {
	in := strings.TrimRight(strings.TrimSpace(s), "=")
	data, err := base64.RawURLEncoding.DecodeString(in)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.KindFormat, "base64url.decode", "input is not valid URL-safe Base64", err)
	}
	return data, nil
}
