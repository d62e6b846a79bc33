package layout

import (
	"strings"

	"github.com/tsawler/manuscript/text"
)

// BreakConfig holds configuration for break detection
type BreakConfig struct {
	// SpacingMultiplier scales the baseline spacing into the spacing threshold
	// Default: 1.5
	SpacingMultiplier float64

	// IndentBucket is the width of the x-position buckets used to find the
	// dominant left margin
	// Default: 10
	IndentBucket float64

	// IndentRatio scales the dominant margin bucket into the indent threshold
	// Default: 0.5
	IndentRatio float64

	// DefaultIndent is the indent threshold used when no x-positions exist
	// Default: 20
	DefaultIndent float64
}

// DefaultBreakConfig returns the standard break detection configuration
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{
		SpacingMultiplier: 1.5,
		IndentBucket:      10,
		IndentRatio:       0.5,
		DefaultIndent:     20,
	}
}

// PairContext is the immutable view of a line pair that break rules are
// evaluated against.
type PairContext struct {
	Prev   Line
	Cur    Line
	Buffer []Line

	FontChanged      bool
	PageChanged      bool
	OnlyNumbers      bool
	SentenceFinished bool
	StartsCapital    bool
	SpacingBreak     bool
	IndentBreak      bool
	MarkerStart      bool
}

// NewPairContext evaluates every signal for the pair (prev, cur). buffer holds
// the lines accumulated since the last break, prev being its last element.
func NewPairContext(prev, cur Line, buffer []Line, th Thresholds) PairContext {
	ctx := PairContext{
		Prev:          prev,
		Cur:           cur,
		Buffer:        buffer,
		FontChanged:   FontChanged(prev.FontSize, cur.FontSize),
		PageChanged:   prev.Page != cur.Page,
		OnlyNumbers:   cur.OnlyNumbers(),
		StartsCapital: cur.StartsUpper(),
		MarkerStart:   text.StartsWithMarker(cur.Text),
	}

	ctx.SentenceFinished = text.EndsSentence(bufferText(buffer))

	if th.Spacing > 0 {
		gap := prev.BottomSpacing
		if cur.TopSpacing > gap {
			gap = cur.TopSpacing
		}
		ctx.SpacingBreak = gap > th.Spacing
	}

	if prev.X > 0 && cur.X > 0 && th.Indent > 0 {
		ctx.IndentBreak = cur.X > prev.X && cur.X-prev.X >= th.Indent
	}

	return ctx
}

func bufferText(buffer []Line) string {
	lines := make([]string, len(buffer))
	for i, l := range buffer {
		lines[i] = l.Text
	}
	return text.JoinLines(lines)
}

// Decision is the outcome of break detection for one line pair.
type Decision struct {
	Break bool
	// Rule names the rule that decided the outcome
	Rule string
}

// breakRule is a named predicate with a fixed outcome.
type breakRule struct {
	name    string
	isBreak bool
	match   func(PairContext) bool
}

// Rules are evaluated in order; the first match wins.
var breakRules = []breakRule{
	{"reference-marker", false, func(c PairContext) bool { return c.MarkerStart }},
	{"numeric-marker", true, func(c PairContext) bool { return c.OnlyNumbers }},
	{"font-change", true, func(c PairContext) bool { return c.FontChanged }},
	{"sentence-capital", true, func(c PairContext) bool { return c.SentenceFinished && c.StartsCapital }},
	{"spacing-or-indent", true, func(c PairContext) bool {
		return (c.SpacingBreak || c.IndentBreak) && c.SentenceFinished
	}},
	{"page-continuation", false, func(c PairContext) bool { return c.PageChanged }},
}

// BreakDetector decides whether a structural boundary separates two lines.
type BreakDetector struct {
	config BreakConfig
}

// NewBreakDetector creates a break detector with default configuration
func NewBreakDetector() *BreakDetector {
	return &BreakDetector{config: DefaultBreakConfig()}
}

// NewBreakDetectorWithConfig creates a break detector with custom configuration
func NewBreakDetectorWithConfig(config BreakConfig) *BreakDetector {
	return &BreakDetector{config: config}
}

// Thresholds computes the document-wide thresholds for lines.
func (d *BreakDetector) Thresholds(lines []Line) Thresholds {
	return ComputeThresholds(lines, d.config)
}

// Decide evaluates the rules against ctx.
func (d *BreakDetector) Decide(ctx PairContext) Decision {
	for _, rule := range breakRules {
		if rule.match(ctx) {
			return Decision{Break: rule.isBreak, Rule: rule.name}
		}
	}
	return Decision{Rule: "continuation"}
}

// IsBreak is a convenience wrapper building the context and deciding.
func (d *BreakDetector) IsBreak(prev, cur Line, buffer []Line, th Thresholds) bool {
	return d.Decide(NewPairContext(prev, cur, buffer, th)).Break
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(breakRules))
	for i, r := range breakRules {
		names[i] = r.name
	}
	return names
}

// String renders a decision for trace output.
func (d Decision) String() string {
	var sb strings.Builder
	if d.Break {
		sb.WriteString("break")
	} else {
		sb.WriteString("join")
	}
	sb.WriteString(" (")
	sb.WriteString(d.Rule)
	sb.WriteString(")")
	return sb.String()
}
