package frames

import (
	"fmt"
	"strings"
)

// BarWidth is the number of slots in the extraction progress bar.
const BarWidth = 50

// Progress is the running count of extracted frames against the total
// reported by the container. The total is never checked against what was
// actually decoded.
type Progress struct {
	Current int
	Total   int
}

// Fraction returns Current/Total, or 0 when the container reported no total.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total)
}

// Percent returns the completion percentage.
func (p Progress) Percent() float64 {
	return p.Fraction() * 100
}

// Filled returns the number of '=' slots, floor(Current/Total*BarWidth),
// clamped to the bar.
func (p Progress) Filled() int {
	filled := int(p.Fraction() * BarWidth)
	if filled > BarWidth {
		return BarWidth
	}
	if filled < 0 {
		return 0
	}
	return filled
}

// Bar renders the bracketed fixed-width bar.
func (p Progress) Bar() string {
	filled := p.Filled()
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", BarWidth-filled) + "]"
}

// String renders the single progress line. The leading carriage return makes
// each update overwrite the previous one.
func (p Progress) String() string {
	return fmt.Sprintf("\rLoading frame: %d/%d %s % .2f %%", p.Current, p.Total, p.Bar(), p.Percent())
}
