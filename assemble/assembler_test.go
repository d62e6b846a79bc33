package assemble

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/service"
)

func TestAssembleLines_SimpleFootnote(t *testing.T) {
	a := New(DefaultConfig())

	book, _, err := a.AssembleLines(context.Background(), []layout.Line{
		line("A claim.", 12, 1),
		line("1", 12, 1),
		line("Footnote text.", 9, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(book.Pages) != 1 || len(book.Pages[0].Items) != 1 {
		t.Fatalf("Expected one page with one item, got %d pages", len(book.Pages))
	}
	p, ok := book.Pages[0].Items[0].(*model.Paragraph)
	if !ok {
		t.Fatalf("Expected paragraph, got %T", book.Pages[0].Items[0])
	}
	if len(p.Sentences) != 1 || p.Sentences[0].Text != "A claim." {
		t.Fatalf("Unexpected sentences %q", p.Text())
	}
	refs := p.Sentences[0].References
	if len(refs) != 1 {
		t.Fatalf("Expected 1 reference, got %d", len(refs))
	}
	if refs[0].ID != "1" {
		t.Errorf("Expected reference id 1, got %q", refs[0].ID)
	}
	if refs[0].Text() != "Footnote text." {
		t.Errorf("Expected footnote body, got %q", refs[0].Text())
	}
}

func TestAssembleLines_InlineMarker(t *testing.T) {
	a := New(DefaultConfig())

	book, _, err := a.AssembleLines(context.Background(), []layout.Line{
		line("Paris.1", 12, 1),
		line("Explanatory note.", 9, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	paras := paragraphs(book.Pages[0])
	if len(paras) != 1 {
		t.Fatalf("Expected 1 visible paragraph, got %d", len(paras))
	}
	s := paras[0].Sentences[0]
	if s.Text != "Paris." {
		t.Errorf("Expected marker stripped, got %q", s.Text)
	}
	if len(s.References) != 1 || s.References[0].ID != "1" {
		t.Fatalf("Expected reference 1, got %v", s.References)
	}
	if got := s.References[0].Text(); got != "Explanatory note." {
		t.Errorf("Expected annexed note, got %q", got)
	}
}

func TestResolve_CrossPageContinuation(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		para(1, 12, "Night fell.", "The sun rose as a new day"),
		para(2, 12, "breaks over the valley.", "Birds sang."),
	})

	if len(units) != 1 {
		t.Fatalf("Expected paragraphs merged, got %v", unitTexts(units))
	}
	if units[0].Page != 1 {
		t.Errorf("Expected merged paragraph on page 1, got %d", units[0].Page)
	}
	p := units[0].Paragraph()
	want := []string{"Night fell.", "The sun rose as a new day breaks over the valley.", "Birds sang."}
	var got []string
	for _, s := range p.Sentences {
		got = append(got, s.Text)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %q, want %q", got, want)
	}
}

func TestAssembleLines_HeadingDetection(t *testing.T) {
	a := New(DefaultConfig())

	book, _, err := a.AssembleLines(context.Background(), []layout.Line{
		line("INTRODUCTION", 18, 1),
		line("This is a normal sentence.", 12, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	items := book.Pages[0].Items
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Kind() != model.KindHeading || items[1].Kind() != model.KindParagraph {
		t.Errorf("Expected heading then paragraph, got %s then %s", items[0].Kind(), items[1].Kind())
	}
}

func TestMergeParagraphs_HeadingsNeverMerge(t *testing.T) {
	a := New(DefaultConfig())

	units := a.MergeParagraphs([]layout.Unit{
		para(1, 12, "An unfinished thought"),
		{Item: model.NewHeading("Chapter Two", 12), Page: 1, FontSize: 12},
		para(1, 12, "lowercase continuation."),
	})

	want := []string{"An unfinished thought", "# Chapter Two", "lowercase continuation."}
	if got := unitTexts(units); !reflect.DeepEqual(got, want) {
		t.Errorf("Units = %q, want %q", got, want)
	}
}

func TestMergeParagraphs_Rules(t *testing.T) {
	tests := []struct {
		name  string
		units []layout.Unit
		want  []string
	}{
		{
			name:  "unfinished previous merges",
			units: []layout.Unit{para(1, 12, "the road went"), para(1, 12, "On and on.")},
			want:  []string{"the road went On and on."},
		},
		{
			name:  "lowercase current merges",
			units: []layout.Unit{para(1, 12, "It ended."), para(1, 12, "or so they said.")},
			want:  []string{"It ended. or so they said."},
		},
		{
			name:  "finished and capitalized stays",
			units: []layout.Unit{para(1, 12, "It ended."), para(1, 12, "Then it began.")},
			want:  []string{"It ended.", "Then it began."},
		},
		{
			name:  "font difference blocks merge",
			units: []layout.Unit{para(1, 12, "the road went"), para(1, 9, "on and on.")},
			want:  []string{"the road went", "on and on."},
		},
		{
			name:  "unknown font merges",
			units: []layout.Unit{para(1, 0, "the road went"), para(1, 9, "on and on.")},
			want:  []string{"the road went on and on."},
		},
	}

	a := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unitTexts(a.MergeParagraphs(tt.units)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeParagraphs_Idempotent(t *testing.T) {
	a := New(DefaultConfig())

	once := a.MergeParagraphs([]layout.Unit{
		para(1, 12, "a b"),
		para(1, 12, "c d."),
		para(2, 12, "E f."),
		para(2, 12, "g h."),
		{Item: model.NewHeading("PART TWO", 14), Page: 2, FontSize: 14},
		para(3, 12, "I j"),
	})
	first := unitTexts(once)

	twice := a.MergeParagraphs(once)
	if got := unitTexts(twice); !reflect.DeepEqual(got, first) {
		t.Errorf("Second merge changed the stream: %q -> %q", first, got)
	}
}

func TestResolve_QueuedMarkerCitesNextParagraph(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		para(1, 12, "the river flows"),
		para(1, 12, "1"),
		para(1, 12, "into the sea."),
		para(1, 9, "Note about rivers."),
	})

	if len(units) != 1 {
		t.Fatalf("Expected a single paragraph, got %q", unitTexts(units))
	}
	s := units[0].Paragraph().Sentences[0]
	if s.Text != "the river flows into the sea." {
		t.Errorf("Unexpected text %q", s.Text)
	}
	if len(s.References) != 1 || s.References[0].Text() != "Note about rivers." {
		t.Fatalf("Expected the note attached to the merged sentence, got %v", s.References)
	}
	if s.References[0].Citation != s {
		t.Error("Expected citation to follow the merge")
	}
}

func TestResolve_QueuedMarkersSpreadAcrossSentences(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		{Item: model.NewHeading("NOTES", 12), Page: 1, FontSize: 12},
		para(1, 12, "1 2 3"),
		para(1, 12, "First point.", "Second point."),
		para(1, 9, "1 One."),
		para(1, 9, "2 Two."),
		para(1, 9, "3 Three."),
	})

	p := units[1].Paragraph()
	if p == nil {
		t.Fatalf("Expected paragraph after heading, got %q", unitTexts(units))
	}
	if n := len(p.Sentences[0].References); n != 1 {
		t.Errorf("Expected 1 reference on first sentence, got %d", n)
	}
	if n := len(p.Sentences[1].References); n != 2 {
		t.Errorf("Expected 2 references on last sentence, got %d", n)
	}
	if got := p.Sentences[1].References[1].Text(); got != "Three." {
		t.Errorf("Expected third note body, got %q", got)
	}
	if len(units) != 2 {
		t.Errorf("Expected footnote bodies removed, got %q", unitTexts(units))
	}
}

func TestResolve_NumberedFootnoteBody(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		para(1, 12, "He said so.2"),
		para(1, 12, "Another body sentence here."),
		para(1, 9, "2 The source of it."),
		para(1, 9, "It continues here."),
	})

	if len(units) != 2 {
		t.Fatalf("Expected 2 body paragraphs, got %q", unitTexts(units))
	}
	s := units[0].Paragraph().Sentences[0]
	if s.Text != "He said so." {
		t.Errorf("Expected marker stripped, got %q", s.Text)
	}
	if len(s.References) != 1 {
		t.Fatalf("Expected one reference, got %d", len(s.References))
	}
	if got := s.References[0].Text(); got != "The source of it. It continues here." {
		t.Errorf("Expected numbered body and continuation, got %q", got)
	}
}

func TestAssembleLines_EnumeratedFootnoteBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"period", "1. Footnote text."},
		{"parenthesis", "1) Footnote text."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(DefaultConfig())

			book, _, err := a.AssembleLines(context.Background(), []layout.Line{
				line("A claim.1", 12, 1),
				line("More body text here.", 12, 1),
				line(tt.body, 9, 1),
			}, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			paras := paragraphs(book.Pages[0])
			if len(paras) != 1 {
				t.Fatalf("Expected footnote annexed, got %d paragraphs", len(paras))
			}
			s := paras[0].Sentences[0]
			if s.Text != "A claim." {
				t.Errorf("Expected marker stripped, got %q", s.Text)
			}
			if len(s.References) != 1 || s.References[0].ID != "1" {
				t.Fatalf("Expected reference 1, got %v", s.References)
			}
			if got := s.References[0].Text(); got != "Footnote text." {
				t.Errorf("Expected enumerator removed from body, got %q", got)
			}
		})
	}
}

func TestAssembleLines_EnumeratedHeading(t *testing.T) {
	a := New(DefaultConfig())

	book, _, err := a.AssembleLines(context.Background(), []layout.Line{
		line("1. Introduction", 16, 1),
		line("This is a normal sentence.", 12, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	items := book.Pages[0].Items
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	h, ok := items[0].(*model.Heading)
	if !ok {
		t.Fatalf("Expected heading, got %T", items[0])
	}
	if h.Text() != "1. Introduction" {
		t.Errorf("Expected heading text kept whole, got %q", h.Text())
	}
}

func TestResolve_BodyFontParagraphClosesRun(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		para(1, 12, "Body one.3"),
		para(1, 9, "Note three."),
		para(1, 12, "Body two."),
		para(1, 12, "Body three."),
		para(1, 9, "Stray small print."),
	})

	texts := unitTexts(units)
	want := []string{"Body one.", "Body two.", "Body three.", "Stray small print."}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Units = %q, want %q", texts, want)
	}
}

func TestResolve_ReprintedMarkerSkipped(t *testing.T) {
	a := New(DefaultConfig())

	units := a.Resolve([]layout.Unit{
		para(1, 12, "A statement.4"),
		para(1, 12, "More text here."),
		para(1, 8, "4"),
		para(1, 8, "The note."),
	})

	if len(units) != 2 {
		t.Fatalf("Expected marker and note removed, got %q", unitTexts(units))
	}
	first := units[0].Paragraph().Sentences[0]
	if len(first.References) != 1 || first.References[0].Text() != "The note." {
		t.Fatalf("Expected note on the inline citation, got %v", first.References)
	}
	if n := len(units[1].Paragraph().Sentences[0].References); n != 0 {
		t.Errorf("Expected the reprinted number not to cite again, got %d", n)
	}
}

func TestAssembleLines_ReferenceClosure(t *testing.T) {
	a := New(DefaultConfig())

	book, _, err := a.AssembleLines(context.Background(), []layout.Line{
		line("A bold claim.3", 12, 1),
		line("Another sentence.", 12, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if refs := book.References(); len(refs) != 0 {
		t.Errorf("Expected references without a body to be dropped, got %d", len(refs))
	}
	if got := paragraphs(book.Pages[0])[0].Text(); got != "A bold claim." {
		t.Errorf("Expected marker stripped, got %q", got)
	}
}

func headerFooterLines() []layout.Line {
	var lines []layout.Line
	bodies := []string{"The first page body.", "The second page body.", "The third page body."}
	for i, body := range bodies {
		page := i + 1
		lines = append(lines,
			line("My Book", 10, page),
			line(body, 12, page),
			line(strconv.Itoa(page), 10, page),
		)
	}
	return lines
}

func TestAssembleLines_HeaderFooterSuppression(t *testing.T) {
	book, _, err := New(DefaultConfig()).AssembleLines(context.Background(), headerFooterLines(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, page := range book.Pages {
		for _, it := range page.Items {
			for _, s := range it.SentenceList() {
				if s.Text == "My Book" {
					t.Errorf("Running head survived on page %d", page.Number)
				}
			}
		}
	}
	if len(book.Pages) != 3 {
		t.Errorf("Expected 3 pages, got %d", len(book.Pages))
	}
}

func TestAssembleLines_IncludeAll(t *testing.T) {
	config := DefaultConfig()
	config.IncludeAll = true

	book, _, err := New(config).AssembleLines(context.Background(), headerFooterLines(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	heads := 0
	book.Walk(func(_ *model.Page, it model.Item) bool {
		if h, ok := it.(*model.Heading); ok && h.Text() == "My Book" {
			heads++
		}
		return true
	})
	if heads != 3 {
		t.Errorf("Expected the running head kept on every page, got %d", heads)
	}
}

func TestAssembleLines_OCR(t *testing.T) {
	ocr := &fakeOCR{texts: map[string]string{
		"scan2.png": "CHAPTER TWO\n\nIt was a dark night.\nThe end came.",
		"fig.png":   "Figure one.",
	}}
	detector := &fakeDetector{lang: "pt"}
	config := DefaultConfig()
	config.Language = "en"

	book, warnings, err := New(config, WithOCR(ocr), WithDetector(detector)).AssembleLines(
		context.Background(),
		[]layout.Line{line("Some body text.", 12, 1)},
		[]ImageRecord{{Page: 2, Path: "scan2.png"}, {Page: 1, Path: "fig.png"}},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings %v", warnings)
	}

	if !book.Metadata.OCR || !reflect.DeepEqual(book.Metadata.OCRPages, []int{2}) {
		t.Errorf("Unexpected OCR metadata %+v", book.Metadata)
	}
	if book.Metadata.PageCount != 2 {
		t.Errorf("Expected page count 2, got %d", book.Metadata.PageCount)
	}
	if book.Metadata.Language != "pt" {
		t.Errorf("Expected detected language pt, got %q", book.Metadata.Language)
	}
	if len(detector.sample) == 0 || len(detector.sample) > 5 {
		t.Errorf("Unexpected detection sample %q", detector.sample)
	}

	page1 := book.Page(1)
	img, ok := page1.Items[len(page1.Items)-1].(*model.Image)
	if !ok {
		t.Fatalf("Expected image last on page 1, got %T", page1.Items[len(page1.Items)-1])
	}
	if len(img.Sentences) != 1 || img.Sentences[0].Text != "Figure one." {
		t.Errorf("Unexpected image sentences %v", img.Sentences)
	}

	page2 := book.Page(2)
	if page2 == nil || len(page2.Items) != 2 {
		t.Fatalf("Expected transcribed page 2 with 2 items")
	}
	if page2.Items[0].Kind() != model.KindHeading {
		t.Errorf("Expected OCR heading, got %s", page2.Items[0].Kind())
	}
	if got := page2.Items[1].(*model.Paragraph).Text(); got != "It was a dark night. The end came." {
		t.Errorf("Unexpected OCR paragraph %q", got)
	}
}

func TestAssembleLines_OCRFailures(t *testing.T) {
	ocr := &fakeOCR{texts: map[string]string{}}

	book, warnings, err := New(DefaultConfig(), WithOCR(ocr)).AssembleLines(
		context.Background(),
		[]layout.Line{line("Some body text.", 12, 1)},
		[]ImageRecord{{Page: 1, Path: "fig.png"}, {Page: 2, Path: "scan2.png"}},
	)
	if err != nil {
		t.Fatalf("OCR failures must not be fatal: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", warnings)
	}
	var ocrErr *service.OCRError
	if !errors.As(warnings[0].Err, &ocrErr) {
		t.Errorf("Expected *service.OCRError, got %T", warnings[0].Err)
	}

	if book.Page(2) != nil {
		t.Error("Expected unreadable scan page to be skipped")
	}
	if book.Metadata.OCR {
		t.Error("Expected no OCR pages recorded")
	}
	img, ok := book.Page(1).Items[1].(*model.Image)
	if !ok || len(img.Sentences) != 0 {
		t.Errorf("Expected image kept without sentences, got %#v", book.Page(1).Items[1])
	}
}

func TestAssembleLines_Translation(t *testing.T) {
	translator := &fakeTranslator{}
	config := DefaultConfig()
	config.Language = "en"
	config.TargetLanguage = "pt"

	book, _, err := New(config, WithTranslator(translator)).AssembleLines(context.Background(), []layout.Line{
		line("A claim.", 12, 1),
		line("1", 12, 1),
		line("Footnote text.", 9, 1),
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if book.Metadata.Language != "pt" {
		t.Errorf("Expected language pt, got %q", book.Metadata.Language)
	}
	if translator.calls != 2 || translator.from != "en" {
		t.Errorf("Expected 2 calls from en, got %d from %q", translator.calls, translator.from)
	}
	for _, s := range book.Sentences() {
		if !strings.HasPrefix(s.Text, "[pt] ") {
			t.Errorf("Sentence not translated: %q", s.Text)
		}
	}
}

func TestAssembleLines_TranslationFailureLeavesBook(t *testing.T) {
	translator := &fakeTranslator{failOn: "Footnote"}
	config := DefaultConfig()
	config.Language = "en"
	config.TargetLanguage = "pt"

	book, _, err := New(config, WithTranslator(translator)).AssembleLines(context.Background(), []layout.Line{
		line("A claim.", 12, 1),
		line("1", 12, 1),
		line("Footnote text.", 9, 1),
	}, nil)

	var trErr *service.TranslationError
	if !errors.As(err, &trErr) {
		t.Fatalf("Expected *service.TranslationError, got %v", err)
	}
	if trErr.From != "en" || trErr.To != "pt" {
		t.Errorf("Unexpected error languages %s->%s", trErr.From, trErr.To)
	}
	if book == nil {
		t.Fatal("Expected the untranslated book alongside the error")
	}
	if book.Metadata.Language != "en" {
		t.Errorf("Expected language unchanged, got %q", book.Metadata.Language)
	}
	for _, s := range book.Sentences() {
		if strings.HasPrefix(s.Text, "[pt]") {
			t.Errorf("Sentence modified despite failure: %q", s.Text)
		}
	}
}

func TestAssembleBlocks_Legacy(t *testing.T) {
	book, _, err := New(DefaultConfig()).AssembleBlocks(context.Background(), []Block{
		{Text: "THE BEGINNING", Page: 1},
		{Text: "It was the best of times,", Page: 1},
		{Text: "it was the worst of times.", Page: 1},
		{Text: "The Old Man And The Sea", Page: 2},
		{Text: "Normal text here.\nIt con-\ntinues.", Page: 2},
		{Text: "Paris.1 is a city.", Page: 2},
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var got []string
	book.Walk(func(_ *model.Page, it model.Item) bool {
		switch v := it.(type) {
		case *model.Heading:
			got = append(got, "# "+v.Text())
		case *model.Paragraph:
			got = append(got, v.Text())
		}
		return true
	})
	want := []string{
		"# THE BEGINNING",
		"It was the best of times, it was the worst of times.",
		"# The Old Man And The Sea",
		"Normal text here. It continues.",
		"Paris.1 is a city.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %q, want %q", got, want)
	}
	if len(book.References()) != 0 {
		t.Error("Text mode must not resolve references")
	}
}

func TestAssembleBlocks_TaggedHeading(t *testing.T) {
	book, _, err := New(DefaultConfig()).AssembleBlocks(context.Background(), []Block{
		{Text: "A quiet beginning, of sorts", Page: 1, Heading: true},
		{Text: "Some body text.", Page: 1},
		{Text: "   ", Page: 1, Heading: true},
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	items := book.Pages[0].Items
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	h, ok := items[0].(*model.Heading)
	if !ok {
		t.Fatalf("Expected heading, got %T", items[0])
	}
	if h.Text() != "A quiet beginning, of sorts" {
		t.Errorf("Unexpected heading %q", h.Text())
	}
}

func TestAssembleLines_NoGeometryFallsBack(t *testing.T) {
	book, _, err := New(DefaultConfig()).AssembleLines(context.Background(), []layout.Line{
		{Text: "First para line", Page: 1},
		{Text: "continues.", Page: 1},
		{Text: "", Page: 1},
		{Text: "Second para.", Page: 1},
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	paras := paragraphs(book.Pages[0])
	if len(paras) != 2 {
		t.Fatalf("Expected 2 paragraphs, got %d", len(paras))
	}
	if paras[0].Text() != "First para line continues." {
		t.Errorf("Unexpected first paragraph %q", paras[0].Text())
	}
}

func TestAssembleLines_Empty(t *testing.T) {
	book, warnings, err := New(DefaultConfig()).AssembleLines(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings %v", warnings)
	}
	if len(book.Pages) != 0 || book.ItemCount() != 0 {
		t.Errorf("Expected an empty book, got %d pages", len(book.Pages))
	}
}

func TestBodyFonts(t *testing.T) {
	fonts := BodyFonts([]layout.Unit{
		para(1, 12, "One.", "Two."),
		para(1, 9, "Note."),
		para(2, 12.04, "Tie."),
		para(2, 9, "Tie."),
		{Item: model.NewHeading("Big", 20), Page: 2, FontSize: 20},
	})

	if fonts[1] != 12 {
		t.Errorf("Expected page 1 body 12, got %v", fonts[1])
	}
	if fonts[2] != 12 {
		t.Errorf("Expected page 2 tie resolved to 12, got %v", fonts[2])
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New(Config{})
	if a.Config().MergeFontTolerance != 0.6 || a.Config().HeaderFooterRatio != 0.3 {
		t.Errorf("Expected defaults applied, got %+v", a.Config())
	}
	if a.Config().Break != layout.DefaultBreakConfig() {
		t.Errorf("Expected default break config, got %+v", a.Config().Break)
	}
}
