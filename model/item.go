package model

import "strings"

// Kind identifies the variant of an Item.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeading
	KindParagraph
	KindReference
	KindImage
)

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindReference:
		return "reference"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Unrecognized names yield KindUnknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heading":
		return KindHeading
	case "paragraph":
		return KindParagraph
	case "reference":
		return KindReference
	case "image":
		return KindImage
	default:
		return KindUnknown
	}
}

// Item is a structural element of a page. The set of implementations is closed
// to this package.
type Item interface {
	Kind() Kind
	SentenceList() []*Sentence
	item()
}

// Sentence is the narratable unit. FontSize is zero when unknown.
type Sentence struct {
	Text       string
	FontSize   float64
	References []*Reference
}

// NewSentence creates a sentence with the given text and font size.
func NewSentence(text string, fontSize float64) *Sentence {
	return &Sentence{Text: text, FontSize: fontSize}
}

// Cite attaches ref to the sentence and records the sentence as its citation
// if the reference has none yet. Citing the same reference twice is a no-op.
func (s *Sentence) Cite(ref *Reference) {
	for _, r := range s.References {
		if r == ref {
			return
		}
	}
	s.References = append(s.References, ref)
	if ref.Citation == nil {
		ref.Citation = s
	}
}

// Heading is a terminal leaf; the assembler never merges it with neighbors.
type Heading struct {
	Sentence *Sentence
}

// NewHeading creates a heading from text.
func NewHeading(text string, fontSize float64) *Heading {
	return &Heading{Sentence: NewSentence(text, fontSize)}
}

func (h *Heading) Kind() Kind { return KindHeading }
func (h *Heading) item()      {}

// SentenceList returns the heading's single sentence.
func (h *Heading) SentenceList() []*Sentence {
	if h.Sentence == nil {
		return nil
	}
	return []*Sentence{h.Sentence}
}

// Text returns the heading text.
func (h *Heading) Text() string {
	if h.Sentence == nil {
		return ""
	}
	return h.Sentence.Text
}

// Paragraph is an ordered list of sentences sharing a font size.
type Paragraph struct {
	Sentences []*Sentence
	FontSize  float64
}

// NewParagraph creates a paragraph from sentence texts, propagating fontSize
// onto each sentence.
func NewParagraph(fontSize float64, texts ...string) *Paragraph {
	p := &Paragraph{FontSize: fontSize}
	for _, t := range texts {
		p.Sentences = append(p.Sentences, NewSentence(t, fontSize))
	}
	return p
}

func (p *Paragraph) Kind() Kind                { return KindParagraph }
func (p *Paragraph) SentenceList() []*Sentence { return p.Sentences }
func (p *Paragraph) item()                     {}

// First returns the first sentence or nil.
func (p *Paragraph) First() *Sentence {
	if len(p.Sentences) == 0 {
		return nil
	}
	return p.Sentences[0]
}

// Last returns the last sentence or nil.
func (p *Paragraph) Last() *Sentence {
	if len(p.Sentences) == 0 {
		return nil
	}
	return p.Sentences[len(p.Sentences)-1]
}

// Text joins the sentence texts with single spaces.
func (p *Paragraph) Text() string {
	return joinSentences(p.Sentences)
}

// Empty reports whether the paragraph has no sentence with text.
func (p *Paragraph) Empty() bool {
	for _, s := range p.Sentences {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}

// Prune drops sentences whose text is blank. References carried by a dropped
// sentence move to the previous surviving sentence, or the next one when the
// dropped sentence was first.
func (p *Paragraph) Prune() {
	kept := p.Sentences[:0]
	var orphans []*Reference
	for _, s := range p.Sentences {
		if strings.TrimSpace(s.Text) == "" {
			if len(kept) > 0 {
				kept[len(kept)-1].References = append(kept[len(kept)-1].References, s.References...)
			} else {
				orphans = append(orphans, s.References...)
			}
			continue
		}
		if len(orphans) > 0 {
			s.References = append(orphans, s.References...)
			orphans = nil
		}
		kept = append(kept, s)
	}
	p.Sentences = kept
}

// Reference is a footnote: a paragraph keyed by its marker id.
type Reference struct {
	Paragraph
	ID       string
	Citation *Sentence
}

// NewReference creates an empty reference with the given id.
func NewReference(id string) *Reference {
	return &Reference{ID: id}
}

func (r *Reference) Kind() Kind { return KindReference }

// Annex moves sentences into the reference.
func (r *Reference) Annex(sentences []*Sentence) {
	r.Sentences = append(r.Sentences, sentences...)
	if r.FontSize == 0 && len(sentences) > 0 {
		r.FontSize = sentences[0].FontSize
	}
}

// Image is a raster image with OCR-derived sentences. It does not take part in
// cross-item merging.
type Image struct {
	Path      string
	Sentences []*Sentence
}

func (i *Image) Kind() Kind                { return KindImage }
func (i *Image) SentenceList() []*Sentence { return i.Sentences }
func (i *Image) item()                     {}

func joinSentences(sentences []*Sentence) string {
	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}
