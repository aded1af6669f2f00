// Package redact masks key material and other secrets before values reach
// an audit log.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	neverPersistKey = "never_persist"

	// Redacted replaces every masked value.
	Redacted = "[REDACTED_SECRET]"
)

// A map key whose lowercased name contains one of these is masked whole.
var sensitiveKeyParts = []string{"key", "secret", "password", "passphrase", "token"}

var (
	kvSecretRe  = regexp.MustCompile(`(?i)((?:api|token|secret|key|password|passphrase)[-_ ]*(?:id|key|token)?\s*[:=]\s*)(['\"]?)([A-Za-z0-9+/=_\-]{8,})(['\"]?)`)
	bearerRe    = regexp.MustCompile(`(?i)\b(bearer|token)\s+([A-Za-z0-9._\-]{10,})`)
	jwtRe       = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
	longTokenRe = regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`)
)

// String masks key=value secrets, bearer tokens, JWTs and long opaque
// tokens in s.
func String(in string) string {
	if strings.TrimSpace(in) == "" {
		return in
	}
	masked := jwtRe.ReplaceAllString(in, Redacted)
	masked = kvSecretRe.ReplaceAllString(masked, `$1$2`+Redacted+`$4`)
	masked = bearerRe.ReplaceAllString(masked, `$1 `+Redacted)
	masked = longTokenRe.ReplaceAllString(masked, Redacted)
	return masked
}

// SensitiveKey reports whether values stored under name are masked whole.
func SensitiveKey(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// Interface redacts recognised sensitive values within nested structures.
func Interface(value any) any {
	switch v := value.(type) {
	case string:
		return String(v)
	case fmt.Stringer:
		return String(v.String())
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = String(s)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Interface(elem)
		}
		return out
	case map[string]string:
		return MapString(v)
	case map[string]any:
		return Map(v)
	default:
		return value
	}
}

// Map returns a copy of in with sensitive keys masked, keys listed under
// "never_persist" masked, and every other value passed through Interface.
func Map(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	var toMask []string
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			toMask = append(toMask, collectNeverPersist(v)...)
			continue
		}
		if SensitiveKey(k) {
			out[k] = Redacted
			continue
		}
		out[k] = Interface(v)
	}
	for _, key := range toMask {
		if _, ok := out[key]; ok {
			out[key] = Redacted
		}
	}
	return out
}

// MapString is Map for string values.
func MapString(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	var toMask []string
	for k, v := range in {
		if strings.EqualFold(k, neverPersistKey) {
			toMask = append(toMask, splitList(v)...)
			continue
		}
		if SensitiveKey(k) {
			out[k] = Redacted
			continue
		}
		out[k] = String(v)
	}
	for _, key := range toMask {
		if _, ok := out[key]; ok {
			out[key] = Redacted
		}
	}
	return out
}

func collectNeverPersist(value any) []string {
	switch v := value.(type) {
	case string:
		return splitList(v)
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, strings.TrimSpace(fmt.Sprint(elem)))
		}
		return out
	default:
		return nil
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
