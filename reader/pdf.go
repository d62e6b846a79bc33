package reader

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/service"
)

// PDFConfig holds configuration for grouping glyphs into lines
type PDFConfig struct {
	// RowTolerance is the largest baseline difference between glyphs of the
	// same line, in points
	// Default: 2.0
	RowTolerance float64

	// WordSpaceRatio is the gap, as a fraction of the font size, above which
	// a space is inserted between two glyphs
	// Default: 0.3
	WordSpaceRatio float64
}

// DefaultPDFConfig returns sensible default configuration
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		RowTolerance:   2.0,
		WordSpaceRatio: 0.3,
	}
}

// PDFDocument is the line stream of a PDF.
type PDFDocument struct {
	Lines     []layout.Line
	PageCount int

	// EmptyPages lists pages without any extractable text, typically scans
	EmptyPages []int

	// Warnings lists pages whose content could not be parsed
	Warnings []string
}

// PDFLines extracts the line stream of the PDF at path with default settings.
func PDFLines(path string) (*PDFDocument, error) {
	return PDFLinesWithConfig(path, DefaultPDFConfig())
}

// PDFLinesWithConfig extracts the line stream of the PDF at path.
func PDFLinesWithConfig(path string, config PDFConfig) (*PDFDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &service.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	doc := &PDFDocument{PageCount: r.NumPage()}
	for i := 1; i <= doc.PageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			doc.EmptyPages = append(doc.EmptyPages, i)
			continue
		}

		texts, err := pageTexts(page)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("page %d: %v", i, err))
			doc.EmptyPages = append(doc.EmptyPages, i)
			continue
		}

		lines := GroupLines(texts, i, config)
		if len(lines) == 0 {
			doc.EmptyPages = append(doc.EmptyPages, i)
			continue
		}
		doc.Lines = append(doc.Lines, lines...)
	}
	return doc, nil
}

// pageTexts reads a page's glyphs. The pdf package panics on some malformed
// content streams.
func pageTexts(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content: %v", r)
		}
	}()
	return page.Content().Text, nil
}

type row struct {
	y     float64
	texts []pdf.Text
}

// GroupLines turns one page's glyphs into lines in top-down reading order.
// Y is the PDF baseline, so larger values are higher on the page.
func GroupLines(texts []pdf.Text, page int, config PDFConfig) []layout.Line {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" && t.S != "\n" {
			glyphs = append(glyphs, t)
		}
	}
	if len(glyphs) == 0 {
		return nil
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	// a row grows while each glyph sits within tolerance of the one above it,
	// so a drifting baseline stays on one line
	var rows []*row
	for _, g := range glyphs {
		if n := len(rows); n > 0 && rows[n-1].y-g.Y <= config.RowTolerance {
			rows[n-1].texts = append(rows[n-1].texts, g)
			rows[n-1].y = g.Y
			continue
		}
		rows = append(rows, &row{y: g.Y, texts: []pdf.Text{g}})
	}

	lines := make([]layout.Line, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.texts, func(i, j int) bool { return r.texts[i].X < r.texts[j].X })
		r.y = r.texts[0].Y
		txt := strings.TrimSpace(joinGlyphs(r.texts, config.WordSpaceRatio))
		if txt == "" {
			continue
		}
		lines = append(lines, layout.Line{
			Text:     txt,
			FontSize: dominantFontSize(r.texts),
			X:        r.texts[0].X,
			Y:        r.y,
			Page:     page,
		})
	}

	for i := range lines {
		if i > 0 {
			lines[i].TopSpacing = lines[i-1].Y - lines[i].Y
		}
		if i+1 < len(lines) {
			lines[i].BottomSpacing = lines[i].Y - lines[i+1].Y
		}
	}
	return lines
}

func joinGlyphs(texts []pdf.Text, spaceRatio float64) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			gap := t.X - (prev.X + prev.W)
			threshold := spaceRatio * math.Max(t.FontSize, prev.FontSize)
			if gap > threshold && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// dominantFontSize returns the font size covering the most characters.
func dominantFontSize(texts []pdf.Text) float64 {
	counts := make(map[float64]int)
	for _, t := range texts {
		if t.FontSize > 0 {
			counts[math.Round(t.FontSize*10)/10] += len([]rune(t.S))
		}
	}
	best, bestCount := 0.0, 0
	for size, n := range counts {
		if n > bestCount || (n == bestCount && size > best) {
			best, bestCount = size, n
		}
	}
	return best
}

// PDFPageCount returns the number of pages of the PDF at path.
func PDFPageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, &service.ExtractionError{Path: path, Err: err}
	}
	defer f.Close()
	return r.NumPage(), nil
}
