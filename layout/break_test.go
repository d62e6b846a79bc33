package layout

import (
	"reflect"
	"testing"
)

func TestBreakDetector_Decide(t *testing.T) {
	th := Thresholds{Spacing: 10, Indent: 15}

	tests := []struct {
		name   string
		buffer []Line
		cur    Line
		want   bool
		rule   string
	}{
		{
			name:   "reference marker joins",
			buffer: []Line{{Text: "End of the sentence.", FontSize: 12, Page: 1}},
			cur:    Line{Text: "1) A note starts here", FontSize: 9, Page: 1},
			want:   false,
			rule:   "reference-marker",
		},
		{
			name:   "digits-only line breaks",
			buffer: []Line{{Text: "the city of Paris", FontSize: 12, Page: 1}},
			cur:    Line{Text: "1", FontSize: 12, Page: 1},
			want:   true,
			rule:   "numeric-marker",
		},
		{
			name:   "font change breaks",
			buffer: []Line{{Text: "INTRODUCTION", FontSize: 18, Page: 1}},
			cur:    Line{Text: "This is a normal sentence.", FontSize: 12, Page: 1},
			want:   true,
			rule:   "font-change",
		},
		{
			name:   "finished sentence then capital breaks",
			buffer: []Line{{Text: "It was over.", FontSize: 12, Page: 1}},
			cur:    Line{Text: "Next morning came.", FontSize: 12, Page: 1},
			want:   true,
			rule:   "sentence-capital",
		},
		{
			name:   "finished sentence with footnote number breaks",
			buffer: []Line{{Text: "He arrived in Paris.1", FontSize: 12, Page: 1}},
			cur:    Line{Text: "The city was quiet.", FontSize: 12, Page: 1},
			want:   true,
			rule:   "sentence-capital",
		},
		{
			name:   "spacing after finished sentence breaks",
			buffer: []Line{{Text: "It was over.", FontSize: 12, Page: 1, BottomSpacing: 18}},
			cur:    Line{Text: "“and then”, she said", FontSize: 12, Page: 1},
			want:   true,
			rule:   "spacing-or-indent",
		},
		{
			name:   "indent after finished sentence breaks",
			buffer: []Line{{Text: "It was over.", FontSize: 12, Page: 1, X: 72}},
			cur:    Line{Text: "and then nothing", FontSize: 12, Page: 1, X: 100},
			want:   true,
			rule:   "spacing-or-indent",
		},
		{
			name:   "spacing without finished sentence joins",
			buffer: []Line{{Text: "the road went on", FontSize: 12, Page: 1, BottomSpacing: 18}},
			cur:    Line{Text: "and on", FontSize: 12, Page: 1},
			want:   false,
			rule:   "continuation",
		},
		{
			name:   "page change joins unfinished sentence",
			buffer: []Line{{Text: "rose as a new", FontSize: 12, Page: 1}},
			cur:    Line{Text: "day dawned.", FontSize: 12, Page: 2},
			want:   false,
			rule:   "page-continuation",
		},
		{
			name:   "ordinary continuation joins",
			buffer: []Line{{Text: "the quick brown", FontSize: 12, Page: 1}},
			cur:    Line{Text: "fox jumped", FontSize: 12, Page: 1},
			want:   false,
			rule:   "continuation",
		},
	}

	detector := NewBreakDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.buffer[len(tt.buffer)-1]
			got := detector.Decide(NewPairContext(prev, tt.cur, tt.buffer, th))
			if got.Break != tt.want {
				t.Errorf("Break = %v, want %v", got.Break, tt.want)
			}
			if got.Rule != tt.rule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.rule)
			}
		})
	}
}

func TestBreakDetector_SentenceFinishedUsesWholeBuffer(t *testing.T) {
	detector := NewBreakDetector()
	buffer := []Line{
		{Text: "This sentence is finished.", Page: 1},
		{Text: "but this one is not", Page: 1},
	}
	cur := Line{Text: "Maybe", Page: 1}

	if detector.IsBreak(buffer[1], cur, buffer, Thresholds{}) {
		t.Error("Expected join when the buffered text does not end a sentence")
	}
}

func TestRuleNames(t *testing.T) {
	want := []string{
		"reference-marker",
		"numeric-marker",
		"font-change",
		"sentence-capital",
		"spacing-or-indent",
		"page-continuation",
	}
	if got := RuleNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() = %v, want %v", got, want)
	}
}

func TestDecision_String(t *testing.T) {
	if got := (Decision{Break: true, Rule: "font-change"}).String(); got != "break (font-change)" {
		t.Errorf("got %q", got)
	}
	if got := (Decision{Rule: "continuation"}).String(); got != "join (continuation)" {
		t.Errorf("got %q", got)
	}
}

func TestComputeThresholds_SpacingAndIndent(t *testing.T) {
	lines := []Line{
		{Text: "a", X: 72, TopSpacing: 0},
		{Text: "b", X: 72, TopSpacing: 12},
		{Text: "c", X: 72, TopSpacing: 12},
		{Text: "d", X: 90, TopSpacing: 14},
	}

	th := ComputeThresholds(lines, DefaultBreakConfig())
	if th.BaselineSpacing != 12 || th.Spacing != 18 {
		t.Errorf("Expected baseline 12 and spacing 18, got %v and %v", th.BaselineSpacing, th.Spacing)
	}
	if th.Indent != 35 {
		t.Errorf("Expected indent 35 (half of the 70 bucket), got %v", th.Indent)
	}

	empty := ComputeThresholds([]Line{{Text: "no geometry"}}, DefaultBreakConfig())
	if empty.Spacing != 0 || empty.Indent != 20 {
		t.Errorf("Expected disabled spacing and default indent, got %+v", empty)
	}
}
