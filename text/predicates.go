package text

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	onlyNumbers  = regexp.MustCompile(`^\d+$`)
	markerList   = regexp.MustCompile(`^\d{1,3}(?:[\s,]+\d{1,3})*$`)
	markerPrefix = regexp.MustCompile(`^\d+[)\].]\s`)
)

// IsOnlyNumbers reports whether s consists of digits only.
func IsOnlyNumbers(s string) bool {
	return onlyNumbers.MatchString(strings.TrimSpace(s))
}

// IsMarkerList reports whether s is one or more footnote numbers separated by
// spaces or commas ("1", "1 2", "3, 4").
func IsMarkerList(s string) bool {
	return markerList.MatchString(strings.TrimSpace(s))
}

// StartsWithMarker reports whether s opens with a reference marker such as
// "1) ", "2. " or "3] ".
func StartsWithMarker(s string) bool {
	return markerPrefix.MatchString(strings.TrimSpace(s))
}

// StartsUpper reports whether the first letter or digit of s is an uppercase
// letter. Leading quotes, dashes and brackets are skipped.
func StartsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.IsUpper(r)
		}
	}
	return false
}

// StartsLower reports whether s starts with a lowercase letter.
func StartsLower(s string) bool {
	r, ok := firstRune(s)
	return ok && unicode.IsLower(r)
}

// HasLetters reports whether s contains at least one letter.
func HasLetters(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// WordCount returns the number of whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// UpperWordRatio returns the fraction of words that are written entirely in
// uppercase and are longer than one letter.
func UpperWordRatio(s string) float64 {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}
	upper := 0
	for _, w := range words {
		letters := strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) })
		if len([]rune(letters)) <= 1 {
			continue
		}
		if letters == strings.ToUpper(letters) && letters != strings.ToLower(letters) {
			upper++
		}
	}
	return float64(upper) / float64(len(words))
}

// AllCapitalized reports whether every word containing a letter starts with
// an uppercase letter. Words starting with a digit are ignored.
func AllCapitalized(s string) bool {
	seen := false
	for _, w := range strings.Fields(s) {
		for _, r := range w {
			if unicode.IsDigit(r) {
				break
			}
			if !unicode.IsLetter(r) {
				continue
			}
			if !unicode.IsUpper(r) {
				return false
			}
			seen = true
			break
		}
	}
	return seen
}
