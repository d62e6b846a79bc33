package assemble

import (
	"log/slog"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/service"
)

// Config holds the thresholds and language settings of an assembly run.
type Config struct {
	// IncludeAll disables header and footer filtering.
	IncludeAll bool `yaml:"include_all"`

	// HeaderFooterRatio is the fraction of pages a repeated edge line must
	// appear on to be filtered.
	// Default: 0.3
	HeaderFooterRatio float64 `yaml:"header_footer_ratio"`

	// FootnoteFontDelta is how far below a page's body font a paragraph must
	// be to count as footnote text.
	// Default: 1.0
	FootnoteFontDelta float64 `yaml:"footnote_font_delta"`

	// MergeFontTolerance is the largest font difference across which two
	// paragraphs may still merge.
	// Default: 0.6
	MergeFontTolerance float64 `yaml:"merge_font_tolerance"`

	// LanguageSampleSize is the number of leading sentences sent to the
	// language detector.
	// Default: 5
	LanguageSampleSize int `yaml:"language_sample_size"`

	// Language is the declared document language. Empty means unknown.
	Language string `yaml:"language"`

	// TargetLanguage triggers translation when it differs from the
	// document language.
	TargetLanguage string `yaml:"target_language"`

	// OCRLanguages is passed to the OCR collaborator, e.g. "eng+fra".
	OCRLanguages string `yaml:"ocr_languages"`

	Break   layout.BreakConfig   `yaml:"-"`
	Heading layout.HeadingConfig `yaml:"-"`
}

// DefaultConfig returns the standard assembly configuration
func DefaultConfig() Config {
	return Config{
		HeaderFooterRatio:  0.3,
		FootnoteFontDelta:  1.0,
		MergeFontTolerance: 0.6,
		LanguageSampleSize: 5,
		Break:              layout.DefaultBreakConfig(),
		Heading:            layout.DefaultHeadingConfig(),
	}
}

// Option wires a collaborator into an Assembler.
type Option func(*Assembler)

// WithOCR sets the OCR collaborator used for image-only pages and images.
func WithOCR(ocr service.OCR) Option {
	return func(a *Assembler) { a.ocr = ocr }
}

// WithDetector sets the language detector.
func WithDetector(d service.LanguageDetector) Option {
	return func(a *Assembler) { a.detector = d }
}

// WithTranslator sets the translator.
func WithTranslator(t service.Translator) Option {
	return func(a *Assembler) { a.translator = t }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// ImageRecord is a raster image found on a page. Images on pages without any
// text are treated as scans of the whole page.
type ImageRecord struct {
	Page int
	Path string
}

// Block is a pre-segmented paragraph of text, used when no geometry is
// available.
type Block struct {
	Text string
	Page int

	// Heading marks a block the source itself tags as a heading, such as an
	// HTML <h2>. Untagged blocks go through the capitalization test.
	Heading bool
}

// Warning is a non-fatal problem encountered while assembling.
type Warning struct {
	Page    int
	Stage   string
	Message string
	Err     error
}

func (w Warning) String() string {
	msg := w.Stage + ": " + w.Message
	if w.Err != nil {
		msg += ": " + w.Err.Error()
	}
	return msg
}
