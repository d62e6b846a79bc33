package model

import "sort"

// Book is the root aggregate produced once per input document.
type Book struct {
	Metadata Metadata
	Pages    []*Page
}

// Metadata contains document-level information.
type Metadata struct {
	Title     string
	Language  string
	PageCount int
	// OCR is true when at least one page was transcribed from an image.
	OCR      bool
	OCRPages []int
}

// Page is an ordered list of items for one source page.
type Page struct {
	Number int
	Items  []Item
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{Pages: make([]*Page, 0)}
}

// AddPage appends a page, keeping pages ordered by number.
func (b *Book) AddPage(page *Page) {
	b.Pages = append(b.Pages, page)
	if n := len(b.Pages); n > 1 && b.Pages[n-2].Number > page.Number {
		sort.SliceStable(b.Pages, func(i, j int) bool {
			return b.Pages[i].Number < b.Pages[j].Number
		})
	}
}

// Page returns the page with the given number, or nil.
func (b *Book) Page(number int) *Page {
	for _, p := range b.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageOrCreate returns the page with the given number, adding it if needed.
func (b *Book) PageOrCreate(number int) *Page {
	if p := b.Page(number); p != nil {
		return p
	}
	p := &Page{Number: number}
	b.AddPage(p)
	return p
}

// ItemCount returns the number of top-level items across all pages.
func (b *Book) ItemCount() int {
	n := 0
	for _, p := range b.Pages {
		n += len(p.Items)
	}
	return n
}

// Walk calls fn for every top-level item in document order. Returning false
// stops the walk.
func (b *Book) Walk(fn func(page *Page, item Item) bool) {
	for _, p := range b.Pages {
		for _, it := range p.Items {
			if !fn(p, it) {
				return
			}
		}
	}
}

// Sentences returns every sentence in document order. Reference sentences
// follow the sentence that cites them; a reference cited more than once is
// visited once.
func (b *Book) Sentences() []*Sentence {
	var out []*Sentence
	seen := make(map[*Reference]bool)
	var visit func(s *Sentence)
	visit = func(s *Sentence) {
		out = append(out, s)
		for _, ref := range s.References {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			for _, rs := range ref.Sentences {
				visit(rs)
			}
		}
	}
	b.Walk(func(_ *Page, it Item) bool {
		for _, s := range it.SentenceList() {
			visit(s)
		}
		return true
	})
	return out
}

// References returns every distinct reference reachable from the book.
func (b *Book) References() []*Reference {
	var refs []*Reference
	seen := make(map[*Reference]bool)
	var collect func(s *Sentence)
	collect = func(s *Sentence) {
		for _, ref := range s.References {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
			for _, rs := range ref.Sentences {
				collect(rs)
			}
		}
	}
	b.Walk(func(_ *Page, it Item) bool {
		for _, s := range it.SentenceList() {
			collect(s)
		}
		return true
	})
	return refs
}
