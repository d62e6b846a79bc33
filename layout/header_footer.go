package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/manuscript/text"
)

// RegionType indicates whether a repeated line sits at the top or bottom of
// its pages
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// HeaderFooterRegion is a normalized line repeated at the edge of many pages
type HeaderFooterRegion struct {
	// Type indicates if this is mostly a header or a footer
	Type RegionType

	// Text is the normalized text, digits folded to "#"
	Text string

	// IsPageNumber indicates if the pattern is a page number
	IsPageNumber bool

	// Pages lists the pages the pattern was seen on
	Pages []int
}

// HeaderFooterConfig holds configuration for header/footer detection
type HeaderFooterConfig struct {
	// MinOccurrenceRatio is the minimum fraction of pages a normalized line
	// must appear on, as a first or last line, to be filtered
	// Default: 0.3
	MinOccurrenceRatio float64

	// MinOccurrences is the absolute minimum number of pages
	// Default: 2
	MinOccurrences int

	// MinPages is the minimum number of pages required for detection
	// Default: 2
	MinPages int
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		MinOccurrenceRatio: 0.3,
		MinOccurrences:     2,
		MinPages:           2,
	}
}

// HeaderFooterDetector finds repeated first and last lines across pages
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{config: DefaultHeaderFooterConfig()}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{config: config}
}

// HeaderFooterResult contains the detection results
type HeaderFooterResult struct {
	Regions []HeaderFooterRegion

	// PageCount is the number of distinct pages seen
	PageCount int

	// Config used for detection
	Config HeaderFooterConfig

	patterns map[string]bool
}

type pageEdges struct {
	first, last int
}

// edges returns the index of the first and last non-blank line per page.
func edges(lines []Line) (map[int]*pageEdges, []int) {
	byPage := make(map[int]*pageEdges)
	var order []int
	for i, l := range lines {
		if l.Blank() {
			continue
		}
		e, ok := byPage[l.Page]
		if !ok {
			e = &pageEdges{first: i, last: i}
			byPage[l.Page] = e
			order = append(order, l.Page)
			continue
		}
		e.last = i
	}
	return byPage, order
}

// Detect analyzes a document's lines, grouped by their Page field
func (d *HeaderFooterDetector) Detect(lines []Line) *HeaderFooterResult {
	byPage, order := edges(lines)
	result := &HeaderFooterResult{
		PageCount: len(order),
		Config:    d.config,
		patterns:  make(map[string]bool),
	}
	if len(order) < d.config.MinPages {
		return result
	}

	type tally struct {
		pages          map[int]bool
		header, footer int
	}
	tallies := make(map[string]*tally)
	note := func(idx, page int, region RegionType) {
		key := text.NormalizeHeaderFooter(lines[idx].Text)
		if key == "" {
			return
		}
		t, ok := tallies[key]
		if !ok {
			t = &tally{pages: make(map[int]bool)}
			tallies[key] = t
		}
		t.pages[page] = true
		if region == Header {
			t.header++
		} else {
			t.footer++
		}
	}

	for _, page := range order {
		e := byPage[page]
		note(e.first, page, Header)
		if e.last != e.first {
			note(e.last, page, Footer)
		}
	}

	threshold := d.config.MinOccurrenceRatio * float64(len(order))
	for key, t := range tallies {
		count := len(t.pages)
		if count < d.config.MinOccurrences || float64(count) < threshold {
			continue
		}

		region := HeaderFooterRegion{
			Type:         Header,
			Text:         key,
			IsPageNumber: isPageNumberPattern(key),
		}
		if t.footer > t.header {
			region.Type = Footer
		}
		for p := range t.pages {
			region.Pages = append(region.Pages, p)
		}
		sort.Ints(region.Pages)

		result.Regions = append(result.Regions, region)
		result.patterns[key] = true
	}

	sort.Slice(result.Regions, func(i, j int) bool {
		return result.Regions[i].Text < result.Regions[j].Text
	})
	return result
}

// Filter removes lines matching a detected pattern from the first and last
// positions of each page. Lines elsewhere on the page are kept.
func (r *HeaderFooterResult) Filter(lines []Line) []Line {
	if !r.HasHeadersOrFooters() {
		return lines
	}

	drop := make(map[int]bool)
	byPage, _ := edges(lines)
	for _, e := range byPage {
		for _, idx := range []int{e.first, e.last} {
			if r.patterns[text.NormalizeHeaderFooter(lines[idx].Text)] {
				drop[idx] = true
			}
		}
	}
	if len(drop) == 0 {
		return lines
	}

	out := make([]Line, 0, len(lines)-len(drop))
	for i, l := range lines {
		if !drop[i] {
			out = append(out, l)
		}
	}
	return out
}

// isPageNumberPattern checks if normalized text looks like a page number
func isPageNumberPattern(normalized string) bool {
	patterns := []string{
		"#",           // "1"
		"page #",      // "Page 1"
		"- # -",       // "- 1 -"
		"# of #",      // "1 of 10"
		"page # of #", // "Page 1 of 10"
		"#/#",         // "1/10"
		"p. #",        // "p. 1"
		"pg. #",       // "pg. 1"
	}

	trimmed := strings.TrimSpace(normalized)
	for _, pattern := range patterns {
		if trimmed == pattern {
			return true
		}
	}
	return false
}

// HasHeadersOrFooters returns true if any pattern was detected
func (r *HeaderFooterResult) HasHeadersOrFooters() bool {
	return r != nil && len(r.Regions) > 0
}

// Texts returns the detected normalized texts of the given region type
func (r *HeaderFooterResult) Texts(region RegionType) []string {
	if r == nil {
		return nil
	}
	var texts []string
	for _, reg := range r.Regions {
		if reg.Type == region {
			texts = append(texts, reg.Text)
		}
	}
	return texts
}

// Summary returns a human-readable summary of detection results
func (r *HeaderFooterResult) Summary() string {
	if !r.HasHeadersOrFooters() {
		return "No headers or footers detected"
	}

	var parts []string
	if headers := r.Texts(Header); len(headers) > 0 {
		parts = append(parts, "Headers: "+strings.Join(headers, ", "))
	}
	if footers := r.Texts(Footer); len(footers) > 0 {
		parts = append(parts, "Footers: "+strings.Join(footers, ", "))
	}
	return strings.Join(parts, "; ")
}
