package layout

import (
	"strings"

	"github.com/tsawler/manuscript/text"
)

// Trace records the decision taken before line Index of the cleaned stream.
type Trace struct {
	Index    int
	Decision Decision
}

// StructureDetector drives break detection and item construction over a
// whole document's line stream.
type StructureDetector struct {
	breaks  *BreakDetector
	factory *ItemFactory
}

// NewStructureDetector creates a structure detector with default components
func NewStructureDetector() *StructureDetector {
	return &StructureDetector{
		breaks:  NewBreakDetector(),
		factory: NewItemFactory(),
	}
}

// NewStructureDetectorWithComponents creates a structure detector from
// explicitly configured components.
func NewStructureDetectorWithComponents(breaks *BreakDetector, factory *ItemFactory) *StructureDetector {
	return &StructureDetector{breaks: breaks, factory: factory}
}

// Detect converts lines, in page and visual order, into units.
func (d *StructureDetector) Detect(lines []Line) []Unit {
	units, _ := d.DetectWithTrace(lines)
	return units
}

// DetectWithTrace is Detect plus the decision taken for every line pair.
func (d *StructureDetector) DetectWithTrace(lines []Line) ([]Unit, []Trace) {
	clean := make([]Line, 0, len(lines))
	for _, l := range lines {
		l.Text = strings.TrimSpace(l.Text)
		if l.Text != "" {
			clean = append(clean, l)
		}
	}
	if len(clean) == 0 {
		return nil, nil
	}

	th := d.breaks.Thresholds(clean)

	var (
		units  []Unit
		traces []Trace
		buffer []Line
	)
	flush := func() {
		if len(buffer) == 0 {
			return
		}
		units = append(units, d.factory.Build(buffer, buffer[0].Page)...)
		buffer = nil
	}

	for i, cur := range clean {
		if len(buffer) == 0 {
			buffer = append(buffer, cur)
			continue
		}

		prev := buffer[len(buffer)-1]
		if joined, ok := text.Dehyphenate(prev.Text, cur.Text); ok {
			prev.Text = joined
			prev.BottomSpacing = cur.BottomSpacing
			buffer[len(buffer)-1] = prev
			traces = append(traces, Trace{Index: i, Decision: Decision{Rule: "dehyphenate"}})
			continue
		}

		decision := d.breaks.Decide(NewPairContext(prev, cur, buffer, th))
		traces = append(traces, Trace{Index: i, Decision: decision})
		if decision.Break {
			flush()
		}
		buffer = append(buffer, cur)
	}
	flush()

	return units, traces
}
