package random

import "unicode/utf8"

// Level is a password strength bucket.
type Level string

const (
	Weak   Level = "weak"
	Fair   Level = "fair"
	Good   Level = "good"
	Strong Level = "strong"
)

// MaxScore is the highest score CheckPasswordStrength awards.
const MaxScore = 8

// StrengthReport is the result of CheckPasswordStrength.
type StrengthReport struct {
	Score       int      `json:"score"`
	Level       Level    `json:"level"`
	Suggestions []string `json:"suggestions"`
}

// Suggestion texts, in check order.
const (
	SuggestLength8   = "Use at least 8 characters"
	SuggestLength12  = "Use 12 or more characters"
	SuggestLowercase = "Add lowercase letters"
	SuggestUppercase = "Add uppercase letters"
	SuggestDigit     = "Add digits"
	SuggestSpecial   = "Add special characters"
	SuggestLength16  = "Use 16 or more characters"
	SuggestNoRepeats = "Avoid runs of three or more identical characters"
)

// CheckPasswordStrength awards one point each for: length >= 8, length >=
// 12, a lowercase letter, an uppercase letter, a digit, a character other
// than ASCII letters and digits, length >= 16, and no run of three
// identical characters. Length counts runes. Suggestions follow the same
// order; of the three length checks only the first unmet one is suggested.
// This is a deliberate departure from suggesting every unmet criterion: an
// eight-character password gets the 12-character hint but not the
// 16-character one, while the 16-character check still costs its point.
func CheckPasswordStrength(password string) StrengthReport {
	n := utf8.RuneCountInString(password)
	var hasLower, hasUpper, hasDigit, hasSym bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSym = true
		}
	}

	report := StrengthReport{Suggestions: []string{}}
	lengthSuggested := false
	check := func(ok bool, suggestion string, lengthTier bool) {
		if ok {
			report.Score++
			return
		}
		if lengthTier {
			if lengthSuggested {
				return
			}
			lengthSuggested = true
		}
		report.Suggestions = append(report.Suggestions, suggestion)
	}

	check(n >= 8, SuggestLength8, true)
	check(n >= 12, SuggestLength12, true)
	check(hasLower, SuggestLowercase, false)
	check(hasUpper, SuggestUppercase, false)
	check(hasDigit, SuggestDigit, false)
	check(hasSym, SuggestSpecial, false)
	check(n >= 16, SuggestLength16, true)
	check(!hasRepeatRun(password, 3), SuggestNoRepeats, false)

	report.Level = levelFor(report.Score)
	return report
}

func levelFor(score int) Level {
	switch {
	case score <= 2:
		return Weak
	case score <= 4:
		return Fair
	case score <= 6:
		return Good
	}
	return Strong
}

func hasRepeatRun(s string, run int) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if count > 0 && r == prev {
			count++
		} else {
			prev, count = r, 1
		}
		if count >= run {
			return true
		}
	}
	return false
}
