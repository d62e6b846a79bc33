package layout

import (
	"strings"

	"github.com/tsawler/manuscript/text"
)

// Line is one line of text as delivered by an extraction backend. Geometry
// fields are zero when the backend could not measure them.
type Line struct {
	// Text is the normalized, trimmed line content
	Text string

	// FontSize is the dominant font size of the line in points
	FontSize float64

	// X is the left edge of the line
	X float64

	// Y is the vertical position of the line on its page
	Y float64

	// Page is the 1-based page number
	Page int

	// TopSpacing is the vertical gap to the previous line
	TopSpacing float64

	// BottomSpacing is the vertical gap to the next line
	BottomSpacing float64
}

// HasGeometry reports whether the line carries any positional or typographic
// measurement.
func (l Line) HasGeometry() bool {
	return l.FontSize > 0 || l.X > 0 || l.Y > 0 || l.TopSpacing > 0 || l.BottomSpacing > 0
}

// Blank reports whether the line has no text.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// OnlyNumbers reports whether the line is a bare number (footnote marker
// candidate).
func (l Line) OnlyNumbers() bool {
	return text.IsOnlyNumbers(l.Text)
}

// StartsUpper reports whether the line opens with a capital letter.
func (l Line) StartsUpper() bool {
	return text.StartsUpper(l.Text)
}

// FontChanged reports whether two font sizes differ by more than 1pt or more
// than 10% of the previous size. Unknown sizes never count as a change.
func FontChanged(prev, cur float64) bool {
	if prev <= 0 || cur <= 0 {
		return false
	}
	delta := absFloat(cur - prev)
	return delta > 1.0 || delta/prev > 0.10
}

// AnyGeometry reports whether at least one line carries geometry.
func AnyGeometry(lines []Line) bool {
	for _, l := range lines {
		if l.HasGeometry() {
			return true
		}
	}
	return false
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
