package assemble

import (
	"math"

	"github.com/tsawler/manuscript/layout"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/text"
)

// state is the per-page bookkeeping shared by the reference passes of one
// Resolve call.
type state struct {
	delta    float64
	bodyFont map[int]float64

	refs map[int]map[string]*model.Reference

	// awaiting holds, per page, references still waiting for their body in
	// creation order
	awaiting map[int][]*model.Reference
	open     map[int]*model.Reference
	closed   map[*model.Reference]bool
}

func newState(units []layout.Unit, delta float64) *state {
	return &state{
		delta:    delta,
		bodyFont: BodyFonts(units),
		refs:     make(map[int]map[string]*model.Reference),
		awaiting: make(map[int][]*model.Reference),
		open:     make(map[int]*model.Reference),
		closed:   make(map[*model.Reference]bool),
	}
}

// BodyFonts returns, per page, the most frequent paragraph sentence font
// rounded to 0.1pt. Ties go to the larger font.
func BodyFonts(units []layout.Unit) map[int]float64 {
	counts := make(map[int]map[float64]int)
	for _, u := range units {
		p := u.Paragraph()
		if p == nil {
			continue
		}
		for _, s := range p.Sentences {
			if s.FontSize <= 0 {
				continue
			}
			if counts[u.Page] == nil {
				counts[u.Page] = make(map[float64]int)
			}
			counts[u.Page][math.Round(s.FontSize*10)/10]++
		}
	}

	body := make(map[int]float64, len(counts))
	for page, byFont := range counts {
		best, bestCount := 0.0, 0
		for font, n := range byFont {
			if n > bestCount || (n == bestCount && font > best) {
				best, bestCount = font, n
			}
		}
		body[page] = best
	}
	return body
}

// small reports whether the unit is set in footnote-sized type.
func (st *state) small(u layout.Unit) bool {
	body := st.bodyFont[u.Page]
	return u.FontSize > 0 && body > 0 && u.FontSize < body-st.delta
}

func (st *state) lookup(page int, id string) *model.Reference {
	return st.refs[page][id]
}

// reference returns the page's reference for id, creating it on first sight.
func (st *state) reference(page int, id string) *model.Reference {
	if ref := st.lookup(page, id); ref != nil {
		return ref
	}
	if st.refs[page] == nil {
		st.refs[page] = make(map[string]*model.Reference)
	}
	ref := model.NewReference(id)
	st.refs[page][id] = ref
	st.awaiting[page] = append(st.awaiting[page], ref)
	return ref
}

func (st *state) isAwaiting(page int, ref *model.Reference) bool {
	for _, r := range st.awaiting[page] {
		if r == ref {
			return true
		}
	}
	return false
}

// activate removes ref from the awaiting queue and makes it the page's open
// reference, closing the previous one.
func (st *state) activate(page int, ref *model.Reference) {
	queue := st.awaiting[page]
	for i, r := range queue {
		if r == ref {
			st.awaiting[page] = append(queue[:i:i], queue[i+1:]...)
			break
		}
	}
	if prev := st.open[page]; prev != nil && prev != ref {
		st.closed[prev] = true
	}
	st.open[page] = ref
}

// closeRun closes the page's open reference.
func (st *state) closeRun(page int) {
	if prev := st.open[page]; prev != nil {
		st.closed[prev] = true
		st.open[page] = nil
	}
}

// stripInlineMarkers detaches digit suffixes such as "Troyes.1" from body
// sentences and cites the matching references.
func (st *state) stripInlineMarkers(units []layout.Unit) {
	for _, u := range units {
		p := u.Paragraph()
		if p == nil || st.small(u) {
			continue
		}
		for _, s := range p.Sentences {
			cleaned, ids := text.StripInlineMarkers(s.Text)
			if len(ids) == 0 {
				continue
			}
			s.Text = cleaned
			for _, id := range ids {
				s.Cite(st.reference(u.Page, id))
			}
		}
	}
}

type pendingRef struct {
	ref      *model.Reference
	fallback *model.Sentence
}

// resolveStandaloneMarkers removes digits-only items and cites their
// references from the surrounding body text.
func (st *state) resolveStandaloneMarkers(units []layout.Unit) []layout.Unit {
	out := make([]layout.Unit, 0, len(units))
	var pending []pendingRef
	var lastPara *model.Paragraph

	for _, u := range units {
		p := u.Paragraph()
		if p != nil && len(p.Sentences) == 1 && text.IsMarkerList(p.Sentences[0].Text) {
			var prev *model.Paragraph
			if n := len(out); n > 0 && out[n-1].Page == u.Page {
				prev = out[n-1].Paragraph()
			}
			for _, id := range text.MarkerIDs(p.Sentences[0].Text) {
				if st.lookup(u.Page, id) != nil && st.small(u) {
					continue
				}
				ref := st.reference(u.Page, id)
				if prev != nil && text.EndsSentence(prev.Last().Text) {
					prev.Last().Cite(ref)
					continue
				}
				pr := pendingRef{ref: ref}
				if lastPara != nil {
					pr.fallback = lastPara.Last()
				}
				pending = append(pending, pr)
			}
			continue
		}

		if p != nil && len(p.Sentences) > 0 && !st.small(u) {
			for i, pr := range pending {
				idx := i
				if idx >= len(p.Sentences) {
					idx = len(p.Sentences) - 1
				}
				p.Sentences[idx].Cite(pr.ref)
			}
			pending = nil
			lastPara = p
		}
		out = append(out, u)
	}

	for _, pr := range pending {
		if pr.fallback != nil {
			pr.fallback.Cite(pr.ref)
		}
	}
	return out
}

// annexBodies moves footnote text into references.
func (st *state) annexBodies(units []layout.Unit) []layout.Unit {
	out := make([]layout.Unit, 0, len(units))
	lastBody := make(map[int]*model.Paragraph)

	for _, u := range units {
		p := u.Paragraph()
		if p == nil || len(p.Sentences) == 0 {
			out = append(out, u)
			continue
		}
		small := st.small(u)

		if st.annexNumbered(u, p, small, lastBody[u.Page]) {
			continue
		}

		if small {
			target := st.open[u.Page]
			for _, ref := range st.awaiting[u.Page] {
				if ref.Citation != nil {
					target = ref
					break
				}
			}
			if target != nil && target.Citation != nil && !st.closed[target] {
				st.activate(u.Page, target)
				target.Annex(p.Sentences)
				continue
			}
			out = append(out, u)
			continue
		}

		st.closeRun(u.Page)
		lastBody[u.Page] = p
		out = append(out, u)
	}
	return out
}

// annexNumbered handles a paragraph opening with its own footnote number,
// "5 Lorem ipsum". It reports whether the paragraph was consumed.
func (st *state) annexNumbered(u layout.Unit, p *model.Paragraph, small bool, lastBody *model.Paragraph) bool {
	first := p.First()
	id, rest, ok := text.LeadingMarker(first.Text)
	if !ok {
		return false
	}

	ref := st.lookup(u.Page, id)
	switch {
	case ref != nil && st.closed[ref]:
		return false
	case ref != nil && (small || st.isAwaiting(u.Page, ref)):
	case ref == nil && small && lastBody != nil:
		ref = st.reference(u.Page, id)
		lastBody.Last().Cite(ref)
	default:
		return false
	}
	if ref.Citation == nil {
		return false
	}

	first.Text = rest
	st.activate(u.Page, ref)
	ref.Annex(p.Sentences)
	return true
}

// Resolve runs the reference passes and the paragraph merge over units and
// returns the surviving units in order.
func (a *Assembler) Resolve(units []layout.Unit) []layout.Unit {
	st := newState(units, a.config.FootnoteFontDelta)

	st.stripInlineMarkers(units)
	units = st.resolveStandaloneMarkers(units)
	units = st.annexBodies(units)
	a.logger.Debug("references resolved", "units", len(units), "pages", len(st.refs))

	return a.MergeParagraphs(units)
}

// MergeParagraphs joins paragraphs split by a break that did not end a
// sentence, including across page boundaries. Headings and images are never
// merged. Running it on its own output changes nothing.
func (a *Assembler) MergeParagraphs(units []layout.Unit) []layout.Unit {
	return mergeUnits(units, func(prev, cur layout.Unit) bool {
		if !a.fontsClose(prev.FontSize, cur.FontSize) {
			return false
		}
		return !text.EndsSentence(prev.Paragraph().Last().Text) ||
			text.StartsLower(cur.Paragraph().First().Text)
	})
}

func (a *Assembler) fontsClose(x, y float64) bool {
	if x <= 0 || y <= 0 {
		return true
	}
	return math.Abs(x-y) < a.config.MergeFontTolerance
}

// mergeUnits folds each paragraph into the preceding one whenever join says
// so. The merged unit keeps the page and font of the first paragraph.
func mergeUnits(units []layout.Unit, join func(prev, cur layout.Unit) bool) []layout.Unit {
	out := make([]layout.Unit, 0, len(units))
	for _, u := range units {
		p := u.Paragraph()
		if p == nil || len(p.Sentences) == 0 {
			if p == nil {
				out = append(out, u)
			}
			continue
		}
		if n := len(out); n > 0 {
			prev := out[n-1].Paragraph()
			if prev != nil && len(prev.Sentences) > 0 && join(out[n-1], u) {
				mergeInto(prev, p)
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// mergeInto appends src to dst, fusing dst's last sentence with src's first.
func mergeInto(dst, src *model.Paragraph) {
	last, first := dst.Last(), src.First()
	switch {
	case last.Text == "":
		last.Text = first.Text
	case first.Text != "":
		last.Text = last.Text + " " + first.Text
	}
	for _, ref := range first.References {
		last.Cite(ref)
		if ref.Citation == first {
			ref.Citation = last
		}
	}
	dst.Sentences = append(dst.Sentences, src.Sentences[1:]...)
}
