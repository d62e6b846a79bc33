package assemble

import (
	"context"

	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/service"
)

// autoLanguage asks the translator to guess the source language.
const autoLanguage = "auto"

// languagePass settles the document language and translates the book when a
// different target language is configured.
func (a *Assembler) languagePass(ctx context.Context, book *model.Book) ([]Warning, error) {
	var warnings []Warning
	book.Metadata.Language = a.config.Language

	if a.detector != nil && (book.Metadata.OCR || book.Metadata.Language == "") {
		if sample := sampleSentences(book, a.config.LanguageSampleSize); len(sample) > 0 {
			lang, err := a.detector.Detect(ctx, sample)
			switch {
			case err != nil:
				a.logger.Warn("language detection failed", "error", err)
				warnings = append(warnings, Warning{Stage: "language", Message: "detection failed", Err: err})
			case lang != "":
				a.logger.Debug("language detected", "language", lang)
				book.Metadata.Language = lang
			}
		}
	}

	target := a.config.TargetLanguage
	if target == "" || a.translator == nil || target == book.Metadata.Language {
		return warnings, nil
	}
	if err := a.Translate(ctx, book, target); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// Translate replaces every sentence of book with its translation into target,
// one call per sentence in document order. The book is only modified when
// every call succeeds; otherwise a *service.TranslationError is returned.
func (a *Assembler) Translate(ctx context.Context, book *model.Book, target string) error {
	from := book.Metadata.Language
	if from == "" {
		from = autoLanguage
	}

	sentences := book.Sentences()
	staged := make([]string, len(sentences))
	for i, s := range sentences {
		if s.Text == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return &service.TranslationError{From: from, To: target, Err: err}
		}
		out, err := a.translator.Translate(ctx, s.Text, from, target)
		if err != nil {
			a.logger.Warn("translation failed", "from", from, "to", target, "sentence", i, "error", err)
			return &service.TranslationError{From: from, To: target, Text: service.Excerpt(s.Text), Err: err}
		}
		staged[i] = out
	}

	for i, s := range sentences {
		if s.Text != "" {
			s.Text = staged[i]
		}
	}
	book.Metadata.Language = target
	a.logger.Debug("book translated", "to", target, "sentences", len(sentences))
	return nil
}

func sampleSentences(book *model.Book, n int) []string {
	var sample []string
	for _, s := range book.Sentences() {
		if len(sample) >= n {
			break
		}
		if s.Text != "" {
			sample = append(sample, s.Text)
		}
	}
	return sample
}
