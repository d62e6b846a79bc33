package manuscript

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/bookfile"
	"github.com/tsawler/manuscript/format"
	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/reader"
	"github.com/tsawler/manuscript/service"
)

// Extractor provides a fluent interface for building a book from a document.
// Each configuration method returns a new Extractor instance, making it safe
// for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	options  ExtractOptions
}

// clone creates a copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages restricts the book to the given pages (1-indexed).
// Multiple calls are cumulative.
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange restricts the book to a range of pages (1-indexed, inclusive).
//
// Example:
//
//	book, _, err := manuscript.Open("doc.pdf").PageRange(5, 10).Book(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Format forces the input format instead of detecting it.
func (e *Extractor) Format(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	return newExt
}

// Config replaces the assembly configuration. Language settings made earlier
// in the chain are overwritten by the ones in config.
func (e *Extractor) Config(config assemble.Config) *Extractor {
	newExt := e.clone()
	newExt.options.assemble = config
	return newExt
}

// PDFConfig replaces the glyph grouping configuration used for PDFs.
func (e *Extractor) PDFConfig(config reader.PDFConfig) *Extractor {
	newExt := e.clone()
	newExt.options.pdf = config
	return newExt
}

// IncludeAll keeps repeated headers, footers and page numbers.
func (e *Extractor) IncludeAll() *Extractor {
	newExt := e.clone()
	newExt.options.assemble.IncludeAll = true
	return newExt
}

// Language declares the document language, e.g. "pt".
func (e *Extractor) Language(code string) *Extractor {
	newExt := e.clone()
	newExt.options.assemble.Language = code
	return newExt
}

// TranslateTo translates the book into the target language. It needs a
// translator, see WithTranslator.
func (e *Extractor) TranslateTo(code string) *Extractor {
	newExt := e.clone()
	newExt.options.assemble.TargetLanguage = code
	return newExt
}

// OCRLanguages sets the languages passed to the OCR engine, e.g. "por+eng".
func (e *Extractor) OCRLanguages(langs string) *Extractor {
	newExt := e.clone()
	newExt.options.assemble.OCRLanguages = langs
	return newExt
}

// ImageDir extracts PDF images into dir so they appear in the book. Pages
// without text are only transcribed when their images are extracted.
func (e *Extractor) ImageDir(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.imageDir = dir
	return newExt
}

// WithOCR sets the OCR collaborator.
func (e *Extractor) WithOCR(ocr service.OCR) *Extractor {
	newExt := e.clone()
	newExt.options.ocr = ocr
	return newExt
}

// WithDetector sets the language detector.
func (e *Extractor) WithDetector(d service.LanguageDetector) *Extractor {
	newExt := e.clone()
	newExt.options.detector = d
	return newExt
}

// WithTranslator sets the translator.
func (e *Extractor) WithTranslator(t service.Translator) *Extractor {
	newExt := e.clone()
	newExt.options.translator = t
	return newExt
}

// WithLogger sets the logger. The default is slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// DetectFormat returns the input format, honoring a forced format.
func (e *Extractor) DetectFormat() (format.Format, error) {
	if e.options.format != format.Unknown {
		return e.options.format, nil
	}
	if e.filename == "" {
		return format.Unknown, fmt.Errorf("no filename specified")
	}
	f, err := format.DetectFile(e.filename)
	if err != nil {
		return format.Unknown, &service.ExtractionError{Path: e.filename, Err: err}
	}
	if f == format.Unknown {
		return format.Unknown, &service.ExtractionError{Path: e.filename, Err: fmt.Errorf("unsupported file format")}
	}
	return f, nil
}

// Lines returns the geometry-annotated line stream of a PDF, after page
// selection. Other formats have no line geometry.
func (e *Extractor) Lines() ([]layout.Line, []Warning, error) {
	f, err := e.DetectFormat()
	if err != nil {
		return nil, nil, err
	}
	if f != format.PDF {
		return nil, nil, fmt.Errorf("lines are only available for PDF input, got %s", f)
	}
	doc, err := reader.PDFLinesWithConfig(e.filename, e.options.pdf)
	if err != nil {
		return nil, nil, err
	}
	return e.filterLines(doc.Lines), pdfWarnings(doc), nil
}

// PageCount returns the number of pages of the source document.
func (e *Extractor) PageCount() (int, error) {
	f, err := e.DetectFormat()
	if err != nil {
		return 0, err
	}

	switch f {
	case format.PDF:
		return reader.PDFPageCount(e.filename)
	case format.EPUB:
		doc, err := reader.EPUBBlocks(e.filename)
		if err != nil {
			return 0, err
		}
		return doc.Pages, nil
	case format.Book:
		book, _, err := bookfile.Load(e.filename)
		if err != nil {
			return 0, err
		}
		return book.Metadata.PageCount, nil
	case format.Text:
		blocks, err := e.textBlocks()
		if err != nil {
			return 0, err
		}
		return maxBlockPage(blocks), nil
	default:
		return 1, nil
	}
}

// Book builds the book. Warnings describe pages or items that were skipped
// or left untranscribed. A translation failure returns the untranslated book
// together with a *service.TranslationError.
func (e *Extractor) Book(ctx context.Context) (*model.Book, []Warning, error) {
	f, err := e.DetectFormat()
	if err != nil {
		return nil, nil, err
	}
	logger := e.logger()
	logger.Debug("building book", "file", e.filename, "format", f)

	asm := assemble.New(e.options.assemble, e.options.assemblerOptions()...)

	switch f {
	case format.PDF:
		return e.pdfBook(ctx, asm)
	case format.EPUB:
		return e.epubBook(ctx)
	case format.HTML:
		return e.htmlBook(ctx, asm)
	case format.Text:
		blocks, err := e.textBlocks()
		if err != nil {
			return nil, nil, err
		}
		return asm.AssembleBlocks(ctx, e.filterBlocks(blocks), nil)
	case format.Image:
		return asm.AssembleLines(ctx, nil, []assemble.ImageRecord{{Page: 1, Path: e.filename}})
	case format.Book:
		return e.savedBook(ctx, asm)
	}
	return nil, nil, &service.ExtractionError{Path: e.filename, Err: fmt.Errorf("unsupported file format: %s", f)}
}

// Markdown builds the book and renders it as Markdown.
func (e *Extractor) Markdown(ctx context.Context) (string, []Warning, error) {
	book, warnings, err := e.Book(ctx)
	if book == nil {
		return "", warnings, err
	}
	return bookfile.Markdown(book), warnings, err
}

// YAML builds the book and returns its persisted form.
func (e *Extractor) YAML(ctx context.Context) ([]byte, []Warning, error) {
	book, warnings, err := e.Book(ctx)
	if err != nil {
		return nil, warnings, err
	}
	data, err := bookfile.Marshal(book)
	return data, warnings, err
}

// ============================================================================
// Per-format assembly
// ============================================================================

func (e *Extractor) pdfBook(ctx context.Context, asm *assemble.Assembler) (*model.Book, []Warning, error) {
	doc, err := reader.PDFLinesWithConfig(e.filename, e.options.pdf)
	if err != nil {
		return nil, nil, err
	}
	warnings := pdfWarnings(doc)

	var images []assemble.ImageRecord
	if e.options.imageDir != "" {
		images, err = reader.PDFImages(e.filename, e.options.imageDir)
		if err != nil {
			// text is still usable without images
			e.logger().Warn("image extraction failed", "file", e.filename, "error", err)
			warnings = append(warnings, Warning{Stage: "images", Message: "extraction failed", Err: err})
		}
		images = e.filterImages(images)
	} else if len(doc.EmptyPages) > 0 {
		for _, p := range doc.EmptyPages {
			if e.selected(p) {
				warnings = append(warnings, Warning{Page: p, Stage: "images", Message: "page has no text and images are not extracted"})
			}
		}
	}

	book, more, err := asm.AssembleLines(ctx, e.filterLines(doc.Lines), images)
	warnings = append(warnings, more...)
	if book != nil && book.Metadata.PageCount < doc.PageCount {
		book.Metadata.PageCount = doc.PageCount
	}
	return book, warnings, err
}

func (e *Extractor) epubBook(ctx context.Context) (*model.Book, []Warning, error) {
	doc, err := reader.EPUBBlocks(e.filename)
	if err != nil {
		return nil, nil, err
	}

	config := e.options.assemble
	if config.Language == "" {
		config.Language = doc.Language
	}
	asm := assemble.New(config, e.options.assemblerOptions()...)

	book, warnings, err := asm.AssembleBlocks(ctx, e.filterBlocks(doc.Blocks), nil)
	if book != nil {
		book.Metadata.Title = doc.Title
		book.Metadata.PageCount = doc.Pages
	}
	return book, warnings, err
}

func (e *Extractor) htmlBook(ctx context.Context, asm *assemble.Assembler) (*model.Book, []Warning, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, nil, &service.ExtractionError{Path: e.filename, Err: err}
	}
	defer f.Close()

	blocks, err := reader.HTMLBlocks(f)
	if err != nil {
		return nil, nil, &service.ExtractionError{Path: e.filename, Err: err}
	}
	for i := range blocks {
		blocks[i].Page = 1
	}
	return asm.AssembleBlocks(ctx, e.filterBlocks(blocks), nil)
}

// savedBook loads a persisted book and applies page selection and
// translation to it.
func (e *Extractor) savedBook(ctx context.Context, asm *assemble.Assembler) (*model.Book, []Warning, error) {
	book, warnings, err := bookfile.Load(e.filename)
	if err != nil {
		return nil, nil, &service.ExtractionError{Path: e.filename, Err: err}
	}

	if set := e.options.pageSet(); set != nil {
		kept := book.Pages[:0]
		for _, p := range book.Pages {
			if set[p.Number] {
				kept = append(kept, p)
			}
		}
		book.Pages = kept
	}

	target := e.options.assemble.TargetLanguage
	if target == "" || target == book.Metadata.Language {
		return book, warnings, nil
	}
	if e.options.translator == nil {
		warnings = append(warnings, Warning{Stage: "language", Message: "no translator configured, translation skipped"})
		return book, warnings, nil
	}
	return book, warnings, asm.Translate(ctx, book, target)
}

func (e *Extractor) textBlocks() ([]assemble.Block, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, &service.ExtractionError{Path: e.filename, Err: err}
	}
	defer f.Close()

	blocks, err := reader.TextBlocks(f)
	if err != nil {
		return nil, &service.ExtractionError{Path: e.filename, Err: err}
	}
	return blocks, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (e *Extractor) logger() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return slog.Default()
}

func (e *Extractor) selected(page int) bool {
	set := e.options.pageSet()
	return set == nil || set[page]
}

func (e *Extractor) filterLines(lines []layout.Line) []layout.Line {
	set := e.options.pageSet()
	if set == nil {
		return lines
	}
	out := make([]layout.Line, 0, len(lines))
	for _, l := range lines {
		if set[l.Page] {
			out = append(out, l)
		}
	}
	return out
}

func (e *Extractor) filterBlocks(blocks []assemble.Block) []assemble.Block {
	set := e.options.pageSet()
	if set == nil {
		return blocks
	}
	out := make([]assemble.Block, 0, len(blocks))
	for _, b := range blocks {
		if set[b.Page] {
			out = append(out, b)
		}
	}
	return out
}

func (e *Extractor) filterImages(images []assemble.ImageRecord) []assemble.ImageRecord {
	set := e.options.pageSet()
	if set == nil {
		return images
	}
	out := make([]assemble.ImageRecord, 0, len(images))
	for _, img := range images {
		if set[img.Page] {
			out = append(out, img)
		}
	}
	return out
}

func pdfWarnings(doc *reader.PDFDocument) []Warning {
	warnings := make([]Warning, 0, len(doc.Warnings))
	for _, w := range doc.Warnings {
		warnings = append(warnings, Warning{Stage: "extract", Message: w})
	}
	return warnings
}

func maxBlockPage(blocks []assemble.Block) int {
	n := 0
	for _, b := range blocks {
		if b.Page > n {
			n = b.Page
		}
	}
	return n
}
