// Package layout turns a document's ordered line stream into structural
// units: headings and paragraphs tagged with their page and font size.
//
// # Pipeline
//
// Lines pass through three stages:
//
//   - [HeaderFooterDetector] drops running heads and page numbers that repeat
//     at the edges of many pages
//   - [BreakDetector] decides, for each pair of adjacent lines, whether a
//     paragraph boundary falls between them
//   - [ItemFactory] materializes each break-delimited buffer into headings
//     and paragraphs
//
// [StructureDetector] drives the last two:
//
//	detector := layout.NewStructureDetector()
//	units := detector.Detect(lines)
//
// # Break Rules
//
// Break rules are evaluated in a fixed order and the first rule that applies
// decides. [RuleNames] lists them. [StructureDetector.DetectWithTrace] reports
// the rule that fired for each line, which is useful when tuning thresholds.
//
// # Thresholds
//
// Spacing and indentation thresholds are derived per document from the line
// stream itself, see [ComputeThresholds]. Lines without geometry simply never
// trigger the spacing and indentation rules.
package layout
