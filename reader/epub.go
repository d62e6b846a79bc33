package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/manuscript/assemble"
	"github.com/tsawler/manuscript/service"
)

// EPUBDocument is the text of an EPUB split into blocks, one page per spine
// item.
type EPUBDocument struct {
	Title    string
	Language string
	Blocks   []assemble.Block
	Pages    int
}

// EPUBBlocks reads the spine of the EPUB at path in order. DRM-protected
// books fail with an error wrapping ErrDRMProtected.
func EPUBBlocks(path string) (*EPUBDocument, error) {
	if err := checkDRM(path); err != nil {
		return nil, &service.ExtractionError{Path: path, Err: err}
	}

	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, &service.ExtractionError{Path: path, Err: err}
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, &service.ExtractionError{Path: path, Err: errors.New("no rootfiles found in epub")}
	}

	book := rc.Rootfiles[0]
	doc := &EPUBDocument{
		Title:    strings.TrimSpace(book.Title),
		Language: strings.TrimSpace(book.Language),
	}

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			return nil, &service.ExtractionError{Path: path, Err: fmt.Errorf("open %s: %w", ref.Item.HREF, err)}
		}
		blocks, err := HTMLBlocks(r)
		r.Close()
		if err != nil {
			return nil, &service.ExtractionError{Path: path, Err: fmt.Errorf("parse %s: %w", ref.Item.HREF, err)}
		}

		doc.Pages++
		for _, b := range blocks {
			b.Page = doc.Pages
			doc.Blocks = append(doc.Blocks, b)
		}
	}
	return doc, nil
}

// HTMLBlocks splits an XHTML document into block-level paragraphs. Heading
// elements are tagged; script and style content is ignored.
func HTMLBlocks(r io.Reader) ([]assemble.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var blocks []assemble.Block
	var sb strings.Builder
	heading := false
	flush := func() {
		if txt := strings.Join(strings.Fields(sb.String()), " "); txt != "" {
			blocks = append(blocks, assemble.Block{Text: txt, Heading: heading})
		}
		sb.Reset()
		heading = false
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Head:
				return
			case atom.Br:
				sb.WriteByte(' ')
				return
			}
		}

		block := n.Type == html.ElementNode && isBlockElement(n.DataAtom)
		if block {
			flush()
			heading = isHeadingElement(n.DataAtom)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}
	walk(root)
	flush()
	return blocks, nil
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Blockquote, atom.Pre, atom.Section,
		atom.Article, atom.Aside, atom.Figcaption, atom.Td, atom.Th, atom.Dd, atom.Dt,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func isHeadingElement(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
