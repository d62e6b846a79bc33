// Package assemble builds a [model.Book] from extracted lines or text blocks.
//
// In geometry mode the line stream is filtered for running heads, split into
// headings and paragraphs by the layout package, and then resolved in four
// ordered passes:
//
//   - inline footnote markers ("Troyes.1") are stripped and cited
//   - standalone marker items are turned into citations and removed
//   - footnote text is annexed into its reference
//   - paragraphs split by a page or column break are merged back
//
// Text mode skips the footnote passes and classifies headings by
// capitalization alone.
//
// Pages that are only an image are transcribed through the OCR collaborator,
// after which the document language can be detected and the whole book
// translated. Collaborators are optional and wired with options:
//
//	a := assemble.New(assemble.DefaultConfig(),
//		assemble.WithOCR(client),
//		assemble.WithTranslator(translator),
//	)
//	book, warnings, err := a.AssembleLines(ctx, lines, images)
package assemble
