package assemble

import (
	"context"
	"strings"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/service"
	"github.com/tsawler/manuscript/text"
)

// transcribePages runs OCR over scans of whole pages and returns the
// recognized text as text-mode units. A page whose scan cannot be read is
// skipped with a warning. Without an OCR collaborator the scans are kept as
// plain images.
func (a *Assembler) transcribePages(ctx context.Context, book *model.Book, scanned []ImageRecord) ([]layout.Unit, []Warning) {
	if len(scanned) == 0 {
		return nil, nil
	}

	var warnings []Warning
	if a.ocr == nil {
		for _, img := range scanned {
			page := book.PageOrCreate(img.Page)
			page.Items = append(page.Items, &model.Image{Path: img.Path})
		}
		warnings = append(warnings, Warning{
			Page:    scanned[0].Page,
			Stage:   "ocr",
			Message: "pages without text found but no OCR configured",
		})
		return nil, warnings
	}

	// several scans of one page are read in order and concatenated
	texts := make(map[int][]string)
	failed := make(map[int]bool)
	var order []int
	for _, img := range scanned {
		if failed[img.Page] {
			continue
		}
		if _, seen := texts[img.Page]; !seen {
			order = append(order, img.Page)
			texts[img.Page] = nil
		}
		tr, err := a.ocr.Transcribe(ctx, img.Path, a.transcribeOptions())
		if err != nil {
			err = &service.OCRError{Path: img.Path, Page: img.Page, Err: err}
			a.logger.Warn("page OCR failed", "page", img.Page, "path", img.Path, "error", err)
			warnings = append(warnings, Warning{Page: img.Page, Stage: "ocr", Message: "page skipped", Err: err})
			failed[img.Page] = true
			continue
		}
		texts[img.Page] = append(texts[img.Page], tr.Text)
	}

	var units []layout.Unit
	for _, page := range order {
		if failed[page] {
			continue
		}
		var blocks []Block
		for _, t := range texts[page] {
			for _, para := range splitParagraphs(t) {
				blocks = append(blocks, Block{Text: para, Page: page})
			}
		}
		units = append(units, legacyUnits(blocks)...)
		book.Metadata.OCR = true
		book.Metadata.OCRPages = append(book.Metadata.OCRPages, page)
	}
	a.logger.Debug("pages transcribed", "pages", len(book.Metadata.OCRPages), "units", len(units))
	return units, warnings
}

// attachImages appends embedded images to their pages, with any text OCR
// finds in them.
func (a *Assembler) attachImages(ctx context.Context, book *model.Book, images []ImageRecord) []Warning {
	var warnings []Warning
	for _, img := range images {
		item := &model.Image{Path: img.Path}
		if a.ocr != nil {
			tr, err := a.ocr.Transcribe(ctx, img.Path, a.transcribeOptions())
			if err != nil {
				err = &service.OCRError{Path: img.Path, Page: img.Page, Err: err}
				a.logger.Warn("image OCR failed", "page", img.Page, "path", img.Path, "error", err)
				warnings = append(warnings, Warning{Page: img.Page, Stage: "ocr", Message: "image text skipped", Err: err})
			} else {
				for _, s := range text.SplitSentences(text.Normalize(tr.Text)) {
					item.Sentences = append(item.Sentences, model.NewSentence(s, 0))
				}
			}
		}
		page := book.PageOrCreate(img.Page)
		page.Items = append(page.Items, item)
	}
	return warnings
}

func (a *Assembler) transcribeOptions() service.TranscribeOptions {
	return service.TranscribeOptions{Languages: a.config.OCRLanguages}
}

// splitParagraphs splits OCR output on blank lines.
func splitParagraphs(s string) []string {
	var out []string
	var buf []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(buf) > 0 {
				out = append(out, strings.Join(buf, "\n"))
				buf = nil
			}
			continue
		}
		buf = append(buf, line)
	}
	if len(buf) > 0 {
		out = append(out, strings.Join(buf, "\n"))
	}
	return out
}
