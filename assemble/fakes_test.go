package assemble

import (
	"context"
	"errors"
	"strings"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/service"
)

type fakeOCR struct {
	texts map[string]string
	calls []string
}

func (f *fakeOCR) Transcribe(_ context.Context, path string, _ service.TranscribeOptions) (service.Transcription, error) {
	f.calls = append(f.calls, path)
	txt, ok := f.texts[path]
	if !ok {
		return service.Transcription{}, errors.New("unreadable image")
	}
	return service.Transcription{Text: txt}, nil
}

type fakeDetector struct {
	lang   string
	err    error
	sample []string
}

func (f *fakeDetector) Detect(_ context.Context, sample []string) (string, error) {
	f.sample = sample
	return f.lang, f.err
}

type fakeTranslator struct {
	failOn string
	calls  int
	from   string
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.calls++
	f.from = from
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", errors.New("service unavailable")
	}
	return "[" + to + "] " + text, nil
}

func line(text string, font float64, page int) layout.Line {
	return layout.Line{Text: text, FontSize: font, X: 72, Page: page}
}

func para(page int, font float64, texts ...string) layout.Unit {
	return layout.Unit{Item: model.NewParagraph(font, texts...), Page: page, FontSize: font}
}

func paragraphs(page *model.Page) []*model.Paragraph {
	var out []*model.Paragraph
	for _, it := range page.Items {
		if p, ok := it.(*model.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

func unitTexts(units []layout.Unit) []string {
	var out []string
	for _, u := range units {
		switch it := u.Item.(type) {
		case *model.Paragraph:
			out = append(out, it.Text())
		case *model.Heading:
			out = append(out, "# "+it.Text())
		}
	}
	return out
}
