package manuscript

import (
	"log/slog"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/format"
	"github.com/tsawler/manuscript/reader"
	"github.com/tsawler/manuscript/service"
)

// ExtractOptions holds configuration for building a book.
type ExtractOptions struct {
	// Page selection (1-indexed); nil means all pages
	pages []int

	// forced input format; Unknown means detect
	format format.Format

	// imageDir receives images extracted from PDFs; empty skips extraction
	imageDir string

	assemble assemble.Config
	pdf      reader.PDFConfig

	// Collaborators
	ocr        service.OCR
	detector   service.LanguageDetector
	translator service.Translator
	logger     *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		assemble: assemble.DefaultConfig(),
		pdf:      reader.DefaultPDFConfig(),
	}
}

// clone creates a deep copy of ExtractOptions. Collaborators are shared.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}

func (o ExtractOptions) assemblerOptions() []assemble.Option {
	opts := []assemble.Option{assemble.WithLogger(o.logger)}
	if o.ocr != nil {
		opts = append(opts, assemble.WithOCR(o.ocr))
	}
	if o.detector != nil {
		opts = append(opts, assemble.WithDetector(o.detector))
	}
	if o.translator != nil {
		opts = append(opts, assemble.WithTranslator(o.translator))
	}
	return opts
}

// pageSet returns the selected pages, or nil for all pages.
func (o ExtractOptions) pageSet() map[int]bool {
	if o.pages == nil {
		return nil
	}
	set := make(map[int]bool, len(o.pages))
	for _, p := range o.pages {
		set[p] = true
	}
	return set
}
