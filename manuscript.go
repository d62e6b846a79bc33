// Package manuscript recovers the logical structure of a document (headings,
// paragraphs, footnotes and images) from the flat text an extractor produces,
// and returns it as a [model.Book].
//
// Basic usage:
//
//	book, warnings, err := manuscript.Open("novel.pdf").Book(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", manuscript.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := manuscript.Open("scan.pdf").
//	    Language("pt").
//	    WithOCR(tesseract).
//	    ImageDir("out/images").
//	    TranslateTo("en").
//	    WithTranslator(client).
//	    Markdown(ctx)
//
// PDF, EPUB, HTML, plain text, single images and previously saved books are
// accepted; the format is detected from the file content and extension.
package manuscript

import (
	"fmt"
	"strings"

	"github.com/tsawler/manuscript/assemble"
)

// Warning is a non-fatal problem met while building a book.
type Warning = assemble.Warning

// Open returns an Extractor for the document at filename. Nothing is read
// until a terminal operation such as Book is called.
//
// Example:
//
//	book, warnings, err := manuscript.Open("document.pdf").Book(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FormatWarnings renders warnings one per line, prefixed with the page when
// one is known.
func FormatWarnings(warnings []Warning) string {
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if w.Page > 0 {
			fmt.Fprintf(&sb, "page %d: ", w.Page)
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	count := manuscript.Must(manuscript.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustBook is like Must for calls that also return warnings, which it
// discards.
//
// Example:
//
//	book := manuscript.MustBook(manuscript.Open("document.pdf").Book(ctx))
func MustBook[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
