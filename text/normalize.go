package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in NFKC form with control and zero-width characters
// removed and runs of whitespace collapsed to a single space.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
			return ' '
		case unicode.IsControl(r):
			return -1
		case unicode.Is(unicode.Cf, r):
			// soft hyphen, zero-width space/joiners, BOM, word joiner
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// JoinLines joins the lines of a paragraph. A line ending in a hyphen followed
// by a line starting with a lowercase letter is concatenated without the
// hyphen; every other pair is joined with a single space.
func JoinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if sb.Len() == 0 {
			sb.WriteString(line)
			continue
		}
		acc := sb.String()
		if strings.HasSuffix(acc, "-") && StartsLower(line) {
			sb.Reset()
			sb.WriteString(acc[:len(acc)-1])
			sb.WriteString(line)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(line)
	}
	return sb.String()
}

// Dehyphenate reports whether prev and next should be glued together with the
// hyphen dropped, and returns the glued text when they should.
func Dehyphenate(prev, next string) (string, bool) {
	prev = strings.TrimSpace(prev)
	next = strings.TrimSpace(next)
	if !strings.HasSuffix(prev, "-") || !StartsLower(next) {
		return "", false
	}
	return prev[:len(prev)-1] + next, true
}

var digitRun = regexp.MustCompile(`\d+`)

// NormalizeHeaderFooter folds a line for header/footer comparison: lowercase,
// digit runs replaced by "#" and whitespace collapsed.
func NormalizeHeaderFooter(s string) string {
	s = strings.ToLower(Normalize(s))
	return digitRun.ReplaceAllString(s, "#")
}

// firstRune returns the first rune of the trimmed string.
func firstRune(s string) (rune, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
