package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const closers = `"'”’»)\]`

var (
	// terminal punctuation, closing quotes, an optional footnote number, then
	// whitespace and the uppercase letter opening the next sentence
	sentenceBoundary = regexp.MustCompile(`[.!?…][` + closers + `]*\d{0,3}\s+\p{Lu}`)
	sentenceEnd      = regexp.MustCompile(`[.!?…][` + closers + `]*\d{0,3}$`)
	enumerator       = regexp.MustCompile(`^\d{1,3}$`)
)

// SplitSentences splits normalized text into sentences. Sentences are trimmed
// and empty results are dropped.
func SplitSentences(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var out []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringIndex(s, -1) {
		// "1. Footnote text" and "2. Methods" open with an enumerator
		if start == 0 && enumerator.MatchString(s[:m[0]]) {
			continue
		}
		_, size := utf8.DecodeLastRuneInString(s[:m[1]])
		next := m[1] - size
		end := len(strings.TrimRightFunc(s[:next], unicode.IsSpace))
		if seg := strings.TrimSpace(s[start:end]); seg != "" {
			out = append(out, seg)
		}
		start = next
	}
	if seg := strings.TrimSpace(s[start:]); seg != "" {
		out = append(out, seg)
	}
	return out
}

// EndsSentence reports whether s ends in terminal punctuation, allowing
// closing quotes and a trailing footnote number ("Paris.1").
func EndsSentence(s string) bool {
	return sentenceEnd.MatchString(strings.TrimSpace(s))
}
