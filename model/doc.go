// Package model provides the manuscript representation produced by structure
// recovery.
//
// A [Book] owns an ordered list of [Page] values, each holding an ordered list
// of [Item] values. Items form a closed set of variants:
//
//   - [Heading] - a single sentence with structural weight
//   - [Paragraph] - an ordered, non-empty list of sentences
//   - [Reference] - a footnote body, owned by the sentence(s) that cite it
//   - [Image] - an image path plus its OCR-derived sentences
//
// Every variant exposes its sentences through [Item.SentenceList], so code that
// only needs text (translation, narration, serialization) does not switch on
// the concrete type.
//
// # Mutability
//
// Paragraphs and references are mutated in place while the assembler runs
// (markers stripped, paragraphs merged, footnote bodies moved into references).
// Once assembly returns, consumers should treat the Book as read-only.
package model
