package assemble

import (
	"strings"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/text"
)

// legacyHeadingRatio is the uppercase word ratio for text-mode headings. It is
// stricter than the geometry heading test, which can also lean on font size.
const legacyHeadingRatio = 0.8

// legacyUnits turns text blocks into units using the text-mode heading test.
func legacyUnits(blocks []Block) []layout.Unit {
	var units []layout.Unit
	for _, b := range blocks {
		joined := text.Normalize(text.JoinLines(strings.Split(b.Text, "\n")))
		sentences := text.SplitSentences(joined)
		if len(sentences) == 0 {
			continue
		}
		u := layout.Unit{Page: b.Page}
		if (b.Heading && text.HasLetters(joined)) || isLegacyHeading(sentences) {
			u.Item = model.NewHeading(strings.Join(sentences, " "), 0)
		} else {
			u.Item = model.NewParagraph(0, sentences...)
		}
		units = append(units, u)
	}
	return units
}

func isLegacyHeading(sentences []string) bool {
	if len(sentences) != 1 || !text.HasLetters(sentences[0]) {
		return false
	}
	s := sentences[0]
	return text.UpperWordRatio(s) >= legacyHeadingRatio || text.AllCapitalized(s)
}

// mergeLegacy joins a paragraph into its predecessor when the predecessor
// does not end a sentence.
func mergeLegacy(units []layout.Unit) []layout.Unit {
	return mergeUnits(units, func(prev, _ layout.Unit) bool {
		return !text.EndsSentence(prev.Paragraph().Last().Text)
	})
}
