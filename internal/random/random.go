// Package random generates random strings, passwords and identifiers and
// scores password strength.
//
// GenerateString draws from math/rand/v2 unless Secure is set, so its
// output is not suitable for secrets by default. GenerateSecurePassword and
// GenerateOptions.Secure draw from crypto/rand.
package random

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Character classes in charset order.
const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// Look-alike characters dropped by ExcludeSimilar.
	SimilarChars = "IOilo01"
)

// DefaultPasswordLength is used when GeneratePassword gets a length of 0.
const DefaultPasswordLength = 12

// GenerateOptions selects the charset for GenerateString. A non-empty
// Custom charset replaces the class flags entirely.
type GenerateOptions struct {
	Length         int    `json:"length"`
	Uppercase      bool   `json:"uppercase"`
	Lowercase      bool   `json:"lowercase"`
	Numbers        bool   `json:"numbers"`
	Symbols        bool   `json:"symbols"`
	ExcludeSimilar bool   `json:"exclude_similar"`
	Custom         string `json:"custom,omitempty"`
	Secure         bool   `json:"secure"`
}

// DefaultGenerateOptions returns 16 characters of letters and digits.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Length: 16, Uppercase: true, Lowercase: true, Numbers: true}
}

// Charset returns the characters opts draws from, in class order.
func (opts GenerateOptions) Charset() string {
	if opts.Custom != "" {
		return opts.Custom
	}
	var sb strings.Builder
	add := func(enabled bool, class string) {
		if !enabled {
			return
		}
		if opts.ExcludeSimilar {
			class = strings.Map(func(r rune) rune {
				if strings.ContainsRune(SimilarChars, r) {
					return -1
				}
				return r
			}, class)
		}
		sb.WriteString(class)
	}
	add(opts.Uppercase, UppercaseChars)
	add(opts.Lowercase, LowercaseChars)
	add(opts.Numbers, NumberChars)
	add(opts.Symbols, SymbolChars)
	return sb.String()
}

// GenerateString returns opts.Length characters, each drawn independently
// and uniformly from the charset.
func GenerateString(opts GenerateOptions) (string, error) {
	const op = "random.string"
	if opts.Length < 0 {
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "length must not be negative, got %d", opts.Length)
	}
	charset := []rune(opts.Charset())
	if len(charset) == 0 {
		return "", toolerr.New(toolerr.KindInvalidArgument, op, "select at least one character class")
	}

	out := make([]rune, opts.Length)
	for i := range out {
		idx, err := drawIndex(len(charset), opts.Secure)
		if err != nil {
			return "", toolerr.Wrap(toolerr.KindIO, op, "read random source", err)
		}
		out[i] = charset[idx]
	}
	return string(out), nil
}

func drawIndex(n int, secure bool) (int, error) {
	if !secure {
		return rand.IntN(n), nil
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// GeneratePassword returns a password of all four classes with look-alike
// characters removed. A length of 0 means DefaultPasswordLength. It uses
// the non-cryptographic source; see GenerateSecurePassword.
func GeneratePassword(length int) (string, error) {
	return GenerateString(passwordOptions(length, false))
}

// GenerateSecurePassword is GeneratePassword backed by crypto/rand.
func GenerateSecurePassword(length int) (string, error) {
	return GenerateString(passwordOptions(length, true))
}

func passwordOptions(length int, secure bool) GenerateOptions {
	if length == 0 {
		length = DefaultPasswordLength
	}
	return GenerateOptions{
		Length:         length,
		Uppercase:      true,
		Lowercase:      true,
		Numbers:        true,
		Symbols:        true,
		ExcludeSimilar: true,
		Secure:         secure,
	}
}
