// Package text provides the string helpers shared by structure recovery:
// Unicode normalization, hyphen-aware line joining, sentence splitting and the
// typographic predicates used by the break detector and the heading test.
//
// # Normalization
//
// [Normalize] applies NFKC (folding ligatures and superscript digits), strips
// control and zero-width characters and collapses whitespace:
//
//	s := text.Normalize("ﬁnal​  word¹")  // "final word1"
//
// # Lines and Sentences
//
// [JoinLines] joins the lines of one paragraph, dropping a trailing hyphen when
// the next line starts with a lowercase letter. [SplitSentences] splits on
// terminal punctuation followed by an optional footnote number, whitespace and
// an uppercase letter.
//
// # Markers
//
// Footnote markers appear either inline ("Troyes.1") or as a leading number on
// the footnote body ("5 Lorem ipsum"). [StripInlineMarkers], [LeadingMarker]
// and [MarkerIDs] recognize the three forms.
package text
