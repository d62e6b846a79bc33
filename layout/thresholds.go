package layout

import (
	"math"
	"sort"
)

// Thresholds are the document-wide values the break detector compares line
// pairs against. They are computed once per document.
type Thresholds struct {
	// BaselineSpacing is the median positive gap between consecutive lines
	BaselineSpacing float64

	// Spacing is the gap above which a line pair counts as a spacing break.
	// Zero disables spacing breaks.
	Spacing float64

	// Indent is the minimum rightward shift that counts as an indentation break
	Indent float64
}

// ComputeThresholds scans the whole line stream and derives the spacing and
// indentation thresholds.
func ComputeThresholds(lines []Line, config BreakConfig) Thresholds {
	var th Thresholds

	width := config.IndentBucket
	if width <= 0 {
		width = 10
	}

	var gaps []float64
	buckets := make(map[int]int)
	for _, l := range lines {
		if l.TopSpacing > 0 {
			gaps = append(gaps, l.TopSpacing)
		}
		if l.X > 0 {
			bucket := int(math.Round(l.X/width) * width)
			buckets[bucket]++
		}
	}

	if len(gaps) > 0 {
		th.BaselineSpacing = median(gaps)
		th.Spacing = th.BaselineSpacing * config.SpacingMultiplier
	}

	th.Indent = config.DefaultIndent
	if mode, ok := modeBucket(buckets); ok && mode > 0 {
		th.Indent = float64(mode) * config.IndentRatio
	}

	return th
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// modeBucket returns the most frequent bucket; ties go to the smaller bucket.
func modeBucket(counts map[int]int) (int, bool) {
	best, bestCount := 0, 0
	for bucket, count := range counts {
		if count > bestCount || (count == bestCount && bucket < best) {
			best, bestCount = bucket, count
		}
	}
	return best, bestCount > 0
}
