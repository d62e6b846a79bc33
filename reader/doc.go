// Package reader adapts extraction backends to the assembler's input
// contract.
//
// # PDF
//
// [PDFLines] reads positioned glyphs with github.com/ledongthuc/pdf and
// groups them into lines carrying font size, position and the vertical gap
// to their neighbours:
//
//	doc, err := reader.PDFLines("book.pdf")
//	book, warnings, err := assembler.AssembleLines(ctx, doc.Lines, images)
//
// [PDFImages] extracts embedded raster images with pdfcpu and writes them to
// a directory so they can be handed to OCR.
//
// # EPUB and Plain Text
//
// [EPUBBlocks] and [TextBlocks] produce pre-segmented paragraphs for the
// assembler's text mode. EPUB spine items are numbered as pages; in plain
// text a form feed starts a new page. [HTMLBlocks] does the same for a
// single HTML document and tags h1-h6 elements as headings. DRM-protected
// EPUBs are rejected with [ErrDRMProtected].
//
// # Errors
//
// Failures to open or parse a source are returned as
// *service.ExtractionError.
package reader
