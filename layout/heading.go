package layout

import "github.com/tsawler/manuscript/text"

// HeadingConfig holds configuration for the heading test
type HeadingConfig struct {
	// MaxShortWords is the word count at or below which an unfinished
	// single-sentence group is a heading
	// Default: 3
	MaxShortWords int

	// UpperRatio is the fraction of all-uppercase words above which a group is
	// a heading
	// Default: 0.6
	UpperRatio float64
}

// DefaultHeadingConfig returns the standard heading configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MaxShortWords: 3,
		UpperRatio:    0.6,
	}
}

// IsHeading classifies a normalized sub-group. sentences is the sentence
// split of the group and firstLine the group's first source line.
func (c HeadingConfig) IsHeading(sentences []string, firstLine string) bool {
	if len(sentences) != 1 || !text.HasLetters(sentences[0]) {
		return false
	}
	return c.looksLikeHeading(sentences[0]) || text.UpperWordRatio(firstLine) > c.UpperRatio
}

func (c HeadingConfig) looksLikeHeading(s string) bool {
	finished := text.EndsSentence(s)
	switch {
	case text.WordCount(s) <= c.MaxShortWords && !finished:
		return true
	case text.UpperWordRatio(s) > c.UpperRatio:
		return true
	case text.AllCapitalized(s) && !finished:
		return true
	}
	return false
}
