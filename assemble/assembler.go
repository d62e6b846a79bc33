package assemble

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/service"
)

// Assembler turns extracted lines or text blocks into a Book. An Assembler
// holds no per-document state and may be reused sequentially.
type Assembler struct {
	config     Config
	ocr        service.OCR
	detector   service.LanguageDetector
	translator service.Translator
	logger     *slog.Logger
}

// New creates an assembler. Zero-valued thresholds in config fall back to
// DefaultConfig.
func New(config Config, opts ...Option) *Assembler {
	config.defaults()
	a := &Assembler{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (c *Config) defaults() {
	d := DefaultConfig()
	if c.HeaderFooterRatio <= 0 {
		c.HeaderFooterRatio = d.HeaderFooterRatio
	}
	if c.FootnoteFontDelta <= 0 {
		c.FootnoteFontDelta = d.FootnoteFontDelta
	}
	if c.MergeFontTolerance <= 0 {
		c.MergeFontTolerance = d.MergeFontTolerance
	}
	if c.LanguageSampleSize <= 0 {
		c.LanguageSampleSize = d.LanguageSampleSize
	}
	if c.Break == (layout.BreakConfig{}) {
		c.Break = d.Break
	}
	if c.Heading == (layout.HeadingConfig{}) {
		c.Heading = d.Heading
	}
}

// Config returns the effective configuration.
func (a *Assembler) Config() Config {
	return a.config
}

// AssembleLines builds a Book from a geometry-annotated line stream and the
// images found in the document. Lines carrying no geometry at all are
// assembled in legacy text mode instead.
//
// A translation failure returns the untranslated book together with a
// *service.TranslationError.
func (a *Assembler) AssembleLines(ctx context.Context, lines []layout.Line, images []ImageRecord) (*model.Book, []Warning, error) {
	if !layout.AnyGeometry(lines) {
		a.logger.Debug("no line geometry, using text mode", "lines", len(lines))
		return a.AssembleBlocks(ctx, linesToBlocks(lines), images)
	}

	pageCount := maxPage(lines, images)
	textPages := make(map[int]bool)
	for _, l := range lines {
		if !l.Blank() {
			textPages[l.Page] = true
		}
	}

	if !a.config.IncludeAll {
		detector := layout.NewHeaderFooterDetectorWithConfig(layout.HeaderFooterConfig{
			MinOccurrenceRatio: a.config.HeaderFooterRatio,
			MinOccurrences:     2,
			MinPages:           2,
		})
		result := detector.Detect(lines)
		if result.HasHeadersOrFooters() {
			before := len(lines)
			lines = result.Filter(lines)
			a.logger.Debug("headers and footers filtered", "summary", result.Summary(), "removed", before-len(lines))
		}
	}

	structure := layout.NewStructureDetectorWithComponents(
		layout.NewBreakDetectorWithConfig(a.config.Break),
		layout.NewItemFactoryWithConfig(a.config.Heading),
	)
	units := structure.Detect(lines)
	a.logger.Debug("structure detected", "lines", len(lines), "units", len(units))

	book := model.NewBook()
	book.Metadata.PageCount = pageCount

	scanned, embedded := splitImages(images, textPages)
	ocrUnits, warnings := a.transcribePages(ctx, book, scanned)
	units = insertByPage(units, ocrUnits)

	units = a.Resolve(units)
	paginate(book, units)

	warnings = append(warnings, a.attachImages(ctx, book, embedded)...)
	finalize(book)

	langWarnings, err := a.languagePass(ctx, book)
	warnings = append(warnings, langWarnings...)
	return book, warnings, err
}

// AssembleBlocks builds a Book from pre-segmented paragraphs. Headings are
// recognized by capitalization alone and paragraphs merge only when the
// previous one lacks terminal punctuation. No footnote resolution is done.
func (a *Assembler) AssembleBlocks(ctx context.Context, blocks []Block, images []ImageRecord) (*model.Book, []Warning, error) {
	textPages := make(map[int]bool)
	pageCount := 0
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) != "" {
			textPages[b.Page] = true
		}
		if b.Page > pageCount {
			pageCount = b.Page
		}
	}
	for _, img := range images {
		if img.Page > pageCount {
			pageCount = img.Page
		}
	}

	book := model.NewBook()
	book.Metadata.PageCount = pageCount

	units := legacyUnits(blocks)
	scanned, embedded := splitImages(images, textPages)
	ocrUnits, warnings := a.transcribePages(ctx, book, scanned)
	units = insertByPage(units, ocrUnits)

	units = mergeLegacy(units)
	a.logger.Debug("text blocks assembled", "blocks", len(blocks), "units", len(units))
	paginate(book, units)

	warnings = append(warnings, a.attachImages(ctx, book, embedded)...)
	finalize(book)

	langWarnings, err := a.languagePass(ctx, book)
	warnings = append(warnings, langWarnings...)
	return book, warnings, err
}

// paginate distributes units onto pages in stream order.
func paginate(book *model.Book, units []layout.Unit) {
	for _, u := range units {
		page := book.PageOrCreate(u.Page)
		page.Items = append(page.Items, u.Item)
	}
}

// finalize prunes blank sentences and drops references that never received
// a body.
func finalize(book *model.Book) {
	for _, page := range book.Pages {
		kept := page.Items[:0]
		for _, it := range page.Items {
			if p, ok := it.(*model.Paragraph); ok {
				p.Prune()
				if len(p.Sentences) == 0 {
					continue
				}
			}
			kept = append(kept, it)
		}
		page.Items = kept
	}

	for _, ref := range book.References() {
		ref.Prune()
	}
	for _, s := range book.Sentences() {
		refs := s.References[:0]
		for _, ref := range s.References {
			if len(ref.Sentences) > 0 {
				refs = append(refs, ref)
			}
		}
		s.References = refs
	}

	pages := book.Pages[:0]
	for _, page := range book.Pages {
		if len(page.Items) > 0 {
			pages = append(pages, page)
		}
	}
	book.Pages = pages
}

func maxPage(lines []layout.Line, images []ImageRecord) int {
	n := 0
	for _, l := range lines {
		if l.Page > n {
			n = l.Page
		}
	}
	for _, img := range images {
		if img.Page > n {
			n = img.Page
		}
	}
	return n
}

// insertByPage merges extra units into a page-ordered stream, placing them
// before the first unit of a later page.
func insertByPage(units, extra []layout.Unit) []layout.Unit {
	if len(extra) == 0 {
		return units
	}
	out := make([]layout.Unit, 0, len(units)+len(extra))
	i := 0
	for _, u := range units {
		for i < len(extra) && extra[i].Page < u.Page {
			out = append(out, extra[i])
			i++
		}
		out = append(out, u)
	}
	return append(out, extra[i:]...)
}

// linesToBlocks groups geometry-less lines into blocks. A blank line or a
// page change ends a block.
func linesToBlocks(lines []layout.Line) []Block {
	var blocks []Block
	var buf []string
	page := 0
	flush := func() {
		if len(buf) > 0 {
			blocks = append(blocks, Block{Text: strings.Join(buf, "\n"), Page: page})
			buf = nil
		}
	}
	for _, l := range lines {
		if l.Page != page {
			flush()
			page = l.Page
		}
		if l.Blank() {
			flush()
			continue
		}
		buf = append(buf, l.Text)
	}
	flush()
	return blocks
}

// splitImages separates images on pages without text, which are scans of the
// whole page, from images embedded among text.
func splitImages(images []ImageRecord, textPages map[int]bool) (scanned, embedded []ImageRecord) {
	for _, img := range images {
		if textPages[img.Page] {
			embedded = append(embedded, img)
		} else {
			scanned = append(scanned, img)
		}
	}
	sort.SliceStable(scanned, func(i, j int) bool { return scanned[i].Page < scanned[j].Page })
	return scanned, embedded
}
