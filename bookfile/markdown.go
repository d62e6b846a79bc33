package bookfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/manuscript/model"
)

// Markdown renders book as Markdown. Citing sentences carry a [^label] marker
// and footnote bodies are listed after the last page. Labels are the reference
// ids, suffixed when an id is reused by a different reference.
func Markdown(book *model.Book) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = WriteMarkdown(&sb, book)
	return sb.String()
}

// WriteMarkdown writes the Markdown rendering of book to w.
func WriteMarkdown(w io.Writer, book *model.Book) error {
	r := &mdRenderer{labels: make(map[*model.Reference]string), used: make(map[string]bool)}
	var sb strings.Builder

	if book.Metadata.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", book.Metadata.Title)
	}
	for _, p := range book.Pages {
		for _, it := range p.Items {
			switch v := it.(type) {
			case *model.Heading:
				fmt.Fprintf(&sb, "## %s\n\n", v.Text())
			case *model.Reference:
				fmt.Fprintf(&sb, "[^%s]: %s\n\n", r.label(v), r.sentences(v.Sentences))
			case *model.Paragraph:
				sb.WriteString(r.sentences(v.Sentences))
				sb.WriteString("\n\n")
			case *model.Image:
				fmt.Fprintf(&sb, "![page %d](%s)\n\n", p.Number, v.Path)
				if len(v.Sentences) > 0 {
					fmt.Fprintf(&sb, "> %s\n\n", r.sentences(v.Sentences))
				}
			}
		}
	}

	// bodies may cite further references, which extends the queue
	for i := 0; i < len(r.queue); i++ {
		ref := r.queue[i]
		fmt.Fprintf(&sb, "[^%s]: %s\n", r.labels[ref], r.sentences(ref.Sentences))
	}

	_, err := io.WriteString(w, strings.TrimRight(sb.String(), "\n")+"\n")
	return err
}

type mdRenderer struct {
	labels map[*model.Reference]string
	used   map[string]bool
	queue  []*model.Reference
}

func (r *mdRenderer) label(ref *model.Reference) string {
	if l, ok := r.labels[ref]; ok {
		return l
	}
	base := strings.Join(strings.Fields(ref.ID), "-")
	if base == "" {
		base = "note"
	}
	l := base
	for n := 2; r.used[l]; n++ {
		l = fmt.Sprintf("%s-%d", base, n)
	}
	r.used[l] = true
	r.labels[ref] = l
	return l
}

func (r *mdRenderer) sentences(list []*model.Sentence) string {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		var sb strings.Builder
		sb.WriteString(s.Text)
		for _, ref := range s.References {
			if ref.Empty() {
				continue
			}
			if _, seen := r.labels[ref]; !seen {
				r.queue = append(r.queue, ref)
			}
			fmt.Fprintf(&sb, "[^%s]", r.label(ref))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}
