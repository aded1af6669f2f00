package toolkit

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/RowanDark/devkit/internal/codec"
	"github.com/RowanDark/devkit/internal/toolerr"
)

// MinConfidence is the lowest confidence Detect reports.
const MinConfidence = 0.3

var (
	base64Pattern    = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
	base64URLPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+=*$`)
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
	percentPattern   = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
	entityPattern    = regexp.MustCompile(`&[a-zA-Z]+;|&#[0-9]+;|&#[xX][0-9a-fA-F]+;`)
	jwtPartPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	codePointPattern = regexp.MustCompile(`^[Uu]\+[0-9A-Fa-f]{4,6}$`)
)

// SmartDetector scores the encodings the registered decode operations
// understand.
type SmartDetector struct{}

// NewSmartDetector creates a new smart detector
func NewSmartDetector() *SmartDetector {
	return &SmartDetector{}
}

// Detect returns likely encodings of input, most confident first.
func (d *SmartDetector) Detect(ctx context.Context, input []byte) ([]DetectionResult, error) {
	if len(input) == 0 {
		return nil, toolerr.New(toolerr.KindInvalidArgument, "detect", "empty input")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := strings.TrimSpace(string(input))
	results := []DetectionResult{}
	results = append(results, d.detectBase64(s)...)
	results = append(results, d.detectHex(s)...)
	results = append(results, d.detectURL(s)...)
	results = append(results, d.detectHTML(s)...)
	results = append(results, d.detectJWT(s)...)
	results = append(results, d.detectCodePoint(s)...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	filtered := results[:0]
	for _, r := range results {
		if r.Confidence >= MinConfidence {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// SupportedEncodings returns a list of encodings this detector can identify
func (d *SmartDetector) SupportedEncodings() []string {
	return []string{
		"base64",
		"base64url",
		"hex",
		"url-encoded",
		"html-entities",
		"jwt",
		"unicode-code-point",
	}
}

func (d *SmartDetector) detectBase64(s string) []DetectionResult {
	results := []DetectionResult{}

	if base64Pattern.MatchString(s) && codec.ValidateBase64(s) {
		if _, err := base64.StdEncoding.DecodeString(s); err == nil {
			confidence := 0.9
			// Short all-alphanumeric words are valid Base64 too.
			if len(s) < 8 && !strings.HasSuffix(s, "=") {
				confidence = 0.5
			}
			results = append(results, DetectionResult{
				Encoding:   "base64",
				Confidence: confidence,
				Reasoning:  "Matches Base64 pattern and decodes successfully",
				Operation:  "base64_decode",
			})
		}
	} else if base64Pattern.MatchString(s) {
		if _, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
			results = append(results, DetectionResult{
				Encoding:   "base64",
				Confidence: 0.7,
				Reasoning:  "Matches Base64 pattern without padding",
				Operation:  "base64_decode",
			})
		}
	}

	if base64URLPattern.MatchString(s) && strings.ContainsAny(s, "-_") {
		if _, err := codec.DecodeBase64URL(s); err == nil {
			results = append(results, DetectionResult{
				Encoding:   "base64url",
				Confidence: 0.85,
				Reasoning:  "Matches URL-safe Base64 pattern",
				Operation:  "base64url_decode",
			})
		}
	}

	return results
}

func (d *SmartDetector) detectHex(s string) []DetectionResult {
	cleaned := s
	hasPrefix := false
	if strings.HasPrefix(cleaned, "0x") || strings.HasPrefix(cleaned, "0X") {
		cleaned = cleaned[2:]
		hasPrefix = true
	}
	cleaned = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(cleaned)

	if !hexPattern.MatchString(cleaned) || len(cleaned)%2 != 0 {
		return nil
	}
	if _, err := codec.HexDecode(cleaned); err != nil {
		return nil
	}

	confidence := 0.8
	if hasPrefix {
		confidence = 0.95
	}
	// All digits could just as well be a decimal number.
	if digitsPattern.MatchString(cleaned) {
		confidence *= 0.6
	}
	return []DetectionResult{{
		Encoding:   "hex",
		Confidence: confidence,
		Reasoning:  "Matches hexadecimal pattern",
		Operation:  "hex_decode",
	}}
}

func (d *SmartDetector) detectURL(s string) []DetectionResult {
	matches := percentPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	if _, err := codec.URLDecode(s); err != nil {
		return nil
	}

	density := float64(len(matches)*3) / float64(len(s))
	confidence := 0.5 + math.Min(float64(len(matches))*0.1, 0.3) + math.Min(density, 0.2)
	confidence = math.Min(confidence, 0.95)

	return []DetectionResult{{
		Encoding:   "url-encoded",
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("Contains %d URL-encoded sequences", len(matches)),
		Operation:  "url_decode",
	}}
}

func (d *SmartDetector) detectHTML(s string) []DetectionResult {
	matches := entityPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	return []DetectionResult{{
		Encoding:   "html-entities",
		Confidence: math.Min(0.4+float64(len(matches))*0.1, 0.9),
		Reasoning:  fmt.Sprintf("Contains %d HTML entities", len(matches)),
		Operation:  "html_decode",
	}}
}

func (d *SmartDetector) detectJWT(s string) []DetectionResult {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil
	}
	for _, part := range parts {
		if !jwtPartPattern.MatchString(part) {
			return nil
		}
	}
	confidence := 0.7
	if _, err := codec.DecodeJWT(s); err == nil {
		confidence = 0.95
	}
	return []DetectionResult{{
		Encoding:   "jwt",
		Confidence: confidence,
		Reasoning:  "Has 3 Base64URL-encoded parts separated by dots (JWT structure)",
		Operation:  "jwt_decode",
	}}
}

func (d *SmartDetector) detectCodePoint(s string) []DetectionResult {
	if !codePointPattern.MatchString(s) {
		return nil
	}
	if _, err := codec.UnicodeToChar(s); err != nil {
		return nil
	}
	return []DetectionResult{{
		Encoding:   "unicode-code-point",
		Confidence: 0.9,
		Reasoning:  "Written as U+ followed by hexadecimal digits",
		Operation:  "unicode_to_char",
	}}
}

// DecodeResult is the outcome of one decode attempt in DecodeAll.
type DecodeResult struct {
	Detection DetectionResult `json:"detection"`
	Decoded   []byte          `json:"decoded"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
}

// DecodeAll runs the decode operation of every detection. Failed attempts
// are reported with Success unset.
func DecodeAll(ctx context.Context, input []byte) ([]DecodeResult, error) {
	detections, err := NewSmartDetector().Detect(ctx, input)
	if err != nil {
		return nil, err
	}

	trimmed := []byte(strings.TrimSpace(string(input)))
	results := []DecodeResult{}
	for _, detection := range detections {
		op, exists := GetOperation(detection.Operation)
		if !exists {
			continue
		}

		decoded, err := op.Execute(ctx, trimmed, nil)
		if err != nil {
			results = append(results, DecodeResult{Detection: detection, Error: err.Error()})
			continue
		}
		results = append(results, DecodeResult{
			Detection: detection,
			Decoded:   decoded,
			Success:   true,
		})
	}
	return results, nil
}
