package bookfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/model"
)

// Warning is a non-fatal problem found while loading.
type Warning = assemble.Warning

const stage = "bookfile"

type document struct {
	Title     string `yaml:"title,omitempty"`
	Language  string `yaml:"language"`
	PageCount int    `yaml:"page_count,omitempty"`
	OCR       bool   `yaml:"ocr,omitempty"`
	OCRPages  []int  `yaml:"ocr_pages,omitempty,flow"`
	Pages     []page `yaml:"pages"`
}

type page struct {
	Number int    `yaml:"number"`
	Items  []item `yaml:"items"`
}

type item struct {
	Kind      string     `yaml:"kind"`
	Text      string     `yaml:"text,omitempty"`
	ID        string     `yaml:"id,omitempty"`
	Path      string     `yaml:"path,omitempty"`
	FontSize  float64    `yaml:"font_size,omitempty"`
	Sentences []sentence `yaml:"sentences,omitempty"`
}

type sentence struct {
	Text       string      `yaml:"text"`
	FontSize   float64     `yaml:"font_size,omitempty"`
	References []reference `yaml:"references,omitempty"`
}

type reference struct {
	ID        string     `yaml:"id"`
	FontSize  float64    `yaml:"font_size,omitempty"`
	Sentences []sentence `yaml:"sentences,omitempty"`
}

// Marshal returns the YAML form of book.
func Marshal(book *model.Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, book); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the YAML form of book to w.
func Encode(w io.Writer, book *model.Book) error {
	if book == nil {
		return fmt.Errorf("bookfile: nil book")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(book)); err != nil {
		return fmt.Errorf("bookfile: encode: %w", err)
	}
	return enc.Close()
}

// Save writes book to path.
func Save(path string, book *model.Book) error {
	data, err := Marshal(book)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bookfile: write %s: %w", path, err)
	}
	return nil
}

// Unmarshal parses the YAML form of a book. Malformed items are skipped with a
// warning; only unparseable YAML is an error.
func Unmarshal(data []byte) (*model.Book, []Warning, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("bookfile: decode: %w", err)
	}
	l := &loader{refs: make(map[string]*model.Reference)}
	return l.book(doc), l.warnings, nil
}

// Load reads a book from path.
func Load(path string) (*model.Book, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("bookfile: read %s: %w", path, err)
	}
	return Unmarshal(data)
}

func toDocument(book *model.Book) document {
	doc := document{
		Title:     book.Metadata.Title,
		Language:  book.Metadata.Language,
		PageCount: book.Metadata.PageCount,
		OCR:       book.Metadata.OCR,
		OCRPages:  book.Metadata.OCRPages,
	}
	written := make(map[*model.Reference]bool)
	for _, p := range book.Pages {
		out := page{Number: p.Number, Items: make([]item, 0, len(p.Items))}
		for _, it := range p.Items {
			out.Items = append(out.Items, toItem(it, written))
		}
		doc.Pages = append(doc.Pages, out)
	}
	return doc
}

func toItem(it model.Item, written map[*model.Reference]bool) item {
	out := item{Kind: it.Kind().String()}
	switch v := it.(type) {
	case *model.Heading:
		out.Text = v.Text()
		if v.Sentence != nil {
			out.FontSize = v.Sentence.FontSize
		}
		return out
	case *model.Reference:
		written[v] = true
		out.ID = v.ID
		out.FontSize = v.FontSize
	case *model.Paragraph:
		out.FontSize = v.FontSize
	case *model.Image:
		out.Path = v.Path
	}
	out.Sentences = toSentences(it.SentenceList(), written)
	return out
}

func toSentences(list []*model.Sentence, written map[*model.Reference]bool) []sentence {
	out := make([]sentence, 0, len(list))
	for _, s := range list {
		ps := sentence{Text: s.Text, FontSize: s.FontSize}
		for _, ref := range s.References {
			if ref.Empty() {
				continue
			}
			pr := reference{ID: ref.ID}
			if !written[ref] {
				written[ref] = true
				pr.FontSize = ref.FontSize
				pr.Sentences = toSentences(ref.Sentences, written)
			}
			ps.References = append(ps.References, pr)
		}
		out = append(out, ps)
	}
	return out
}

type loader struct {
	// refs maps an id to the most recent reference loaded with it, for
	// citations written without a body
	refs     map[string]*model.Reference
	warnings []Warning
}

func (l *loader) warn(pageNum int, format string, args ...any) {
	l.warnings = append(l.warnings, Warning{Page: pageNum, Stage: stage, Message: fmt.Sprintf(format, args...)})
}

func (l *loader) book(doc document) *model.Book {
	book := model.NewBook()
	book.Metadata = model.Metadata{
		Title:     doc.Title,
		Language:  doc.Language,
		PageCount: doc.PageCount,
		OCR:       doc.OCR,
		OCRPages:  doc.OCRPages,
	}
	for _, p := range doc.Pages {
		pg := &model.Page{Number: p.Number}
		for i, it := range p.Items {
			if item := l.item(p.Number, i, it); item != nil {
				pg.Items = append(pg.Items, item)
			}
		}
		if len(pg.Items) == 0 {
			continue
		}
		book.AddPage(pg)
	}
	if book.Metadata.PageCount == 0 {
		book.Metadata.PageCount = len(book.Pages)
	}
	return book
}

func (l *loader) item(pageNum, index int, it item) model.Item {
	switch model.ParseKind(it.Kind) {
	case model.KindHeading:
		if strings.TrimSpace(it.Text) == "" {
			l.warn(pageNum, "item %d: heading without text", index)
			return nil
		}
		return model.NewHeading(it.Text, it.FontSize)

	case model.KindParagraph:
		sentences := l.sentences(pageNum, it.Sentences)
		if len(sentences) == 0 {
			l.warn(pageNum, "item %d: paragraph without sentences", index)
			return nil
		}
		return &model.Paragraph{Sentences: sentences, FontSize: it.FontSize}

	case model.KindReference:
		if it.ID == "" {
			l.warn(pageNum, "item %d: reference without id", index)
			return nil
		}
		ref := l.reference(pageNum, reference{ID: it.ID, FontSize: it.FontSize, Sentences: it.Sentences})
		if ref == nil {
			l.warn(pageNum, "item %d: reference %q without sentences", index, it.ID)
			return nil
		}
		return ref

	case model.KindImage:
		if it.Path == "" {
			l.warn(pageNum, "item %d: image without path", index)
			return nil
		}
		return &model.Image{Path: it.Path, Sentences: l.sentences(pageNum, it.Sentences)}
	}

	l.warn(pageNum, "item %d: unknown kind %q", index, it.Kind)
	return nil
}

func (l *loader) sentences(pageNum int, list []sentence) []*model.Sentence {
	var out []*model.Sentence
	for _, ps := range list {
		if strings.TrimSpace(ps.Text) == "" {
			if len(ps.References) > 0 {
				l.warn(pageNum, "blank sentence with references dropped")
			}
			continue
		}
		s := model.NewSentence(ps.Text, ps.FontSize)
		for _, pr := range ps.References {
			if pr.ID == "" {
				l.warn(pageNum, "reference without id dropped")
				continue
			}
			var ref *model.Reference
			if len(pr.Sentences) == 0 {
				ref = l.refs[pr.ID]
			} else {
				ref = l.reference(pageNum, pr)
			}
			if ref == nil {
				l.warn(pageNum, "reference %q has no body", pr.ID)
				continue
			}
			s.Cite(ref)
		}
		out = append(out, s)
	}
	return out
}

func (l *loader) reference(pageNum int, pr reference) *model.Reference {
	ref := model.NewReference(pr.ID)
	ref.FontSize = pr.FontSize
	ref.Sentences = l.sentences(pageNum, pr.Sentences)
	if len(ref.Sentences) == 0 {
		return nil
	}
	l.refs[pr.ID] = ref
	return ref
}
