package text

import (
	"regexp"
	"strings"
)

var (
	// two letters or closing punctuation, 1-3 digits, then whitespace or end
	inlineMarker  = regexp.MustCompile(`(\p{L}{2}|[.,;:!?…)\]"'”’»])(\d{1,3})(\s|$)`)
	leadingMarker = regexp.MustCompile(`^(\d{1,3})[).]?\s+(\S.*)$`)
	markerSplit   = regexp.MustCompile(`[\s,]+`)
)

// StripInlineMarkers removes footnote numbers glued to the end of a word
// ("Troyes.1 The" becomes "Troyes. The") and returns the cleaned text together
// with the removed ids in order of appearance.
func StripInlineMarkers(s string) (string, []string) {
	matches := inlineMarker.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var sb strings.Builder
	var ids []string
	last := 0
	for _, m := range matches {
		digitsStart, digitsEnd := m[4], m[5]
		// "3.2 " is a section number, not a marker
		if m[3]-m[2] == 1 && m[2] > 0 && isASCIIDigit(s[m[2]-1]) {
			continue
		}
		sb.WriteString(s[last:digitsStart])
		ids = append(ids, s[digitsStart:digitsEnd])
		last = digitsEnd
	}
	if len(ids) == 0 {
		return s, nil
	}
	sb.WriteString(s[last:])
	return strings.TrimSpace(sb.String()), ids
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// LeadingMarker splits a footnote body such as "5 Lorem ipsum" or "5) Lorem"
// into its id and the remaining text.
func LeadingMarker(s string) (id, rest string, ok bool) {
	m := leadingMarker.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// MarkerIDs returns the ids of a standalone marker item ("1 2" => [1 2]).
// It returns nil when s is not a marker list.
func MarkerIDs(s string) []string {
	if !IsMarkerList(s) {
		return nil
	}
	return markerSplit.Split(strings.TrimSpace(s), -1)
}
