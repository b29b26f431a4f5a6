package render

import "github.com/couchcryptid/temperature-heatmap/internal/scale"

// Layout holds the fixed geometry of the page, in logical pixels.
type Layout struct {
	Width   float64
	Height  float64
	Padding float64

	LegendWidth    float64
	LegendHeight   float64
	LegendOffset   float64 // distance below the plot's bottom edge
	LegendSwatches int
	LegendTicks    int

	YearTickEvery int
}

// DefaultLayout is a 1200×600 surface with an 80 px margin and a 300×20
// six-swatch legend centred below the plot.
func DefaultLayout() Layout {
	return Layout{
		Width:          1200,
		Height:         600,
		Padding:        80,
		LegendWidth:    300,
		LegendHeight:   20,
		LegendOffset:   50,
		LegendSwatches: 6,
		LegendTicks:    6,
		YearTickEvery:  10,
	}
}

// Ranges returns the pixel intervals for the year and month band scales.
func (l Layout) Ranges() scale.Ranges {
	return scale.Ranges{
		X: scale.Range{Start: l.Padding, Stop: l.Width - l.Padding},
		Y: scale.Range{Start: l.Padding, Stop: l.Height - l.Padding},
	}
}
