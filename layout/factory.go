package layout

import (
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/text"
)

// Unit is one structural item produced from a break-delimited buffer, tagged
// with the page its buffer started on and its font size.
type Unit struct {
	Item     model.Item
	Page     int
	FontSize float64
}

// Paragraph returns the unit's item as a paragraph, or nil for other kinds.
// References are not paragraphs for this purpose.
func (u Unit) Paragraph() *model.Paragraph {
	p, _ := u.Item.(*model.Paragraph)
	return p
}

// ItemFactory turns a buffer of lines into headings and paragraphs.
type ItemFactory struct {
	heading HeadingConfig
}

// NewItemFactory creates an item factory with the default heading test
func NewItemFactory() *ItemFactory {
	return &ItemFactory{heading: DefaultHeadingConfig()}
}

// NewItemFactoryWithConfig creates an item factory with a custom heading test
func NewItemFactoryWithConfig(config HeadingConfig) *ItemFactory {
	return &ItemFactory{heading: config}
}

// Build splits buffer into font groups and materializes each group. A group
// belongs to the page of its first line, or to page when that is unknown.
// Groups that normalize to nothing are dropped.
func (f *ItemFactory) Build(buffer []Line, page int) []Unit {
	var units []Unit
	for _, group := range splitFontGroups(buffer) {
		if u, ok := f.buildGroup(group, page); ok {
			units = append(units, u)
		}
	}
	return units
}

// splitFontGroups starts a new group on a font change. A digits-only line is
// always a group of its own.
func splitFontGroups(buffer []Line) [][]Line {
	var groups [][]Line
	var current []Line
	for _, l := range buffer {
		if len(current) > 0 {
			prev := current[len(current)-1]
			if FontChanged(prev.FontSize, l.FontSize) || l.OnlyNumbers() || prev.OnlyNumbers() {
				groups = append(groups, current)
				current = nil
			}
		}
		current = append(current, l)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func (f *ItemFactory) buildGroup(group []Line, page int) (Unit, bool) {
	raw := make([]string, len(group))
	for i, l := range group {
		raw[i] = l.Text
	}

	joined := text.Normalize(text.JoinLines(raw))
	if joined == "" {
		return Unit{}, false
	}

	sentences := text.SplitSentences(joined)
	if len(sentences) == 0 {
		return Unit{}, false
	}

	fontSize := groupFontSize(group)
	unit := Unit{Page: page, FontSize: fontSize}
	if group[0].Page > 0 {
		unit.Page = group[0].Page
	}

	if f.heading.IsHeading(sentences, text.Normalize(group[0].Text)) {
		unit.Item = model.NewHeading(sentences[0], fontSize)
		return unit, true
	}

	unit.Item = model.NewParagraph(fontSize, sentences...)
	return unit, true
}

// groupFontSize returns the first known font size in the group.
func groupFontSize(group []Line) float64 {
	for _, l := range group {
		if l.FontSize > 0 {
			return l.FontSize
		}
	}
	return 0
}
