package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
)

// Title is the heading shown above the heat map.
const Title = "Monthly Global Land-Surface Temperature"

// Chart is everything the page draws for one render. A nil *Chart renders
// an empty surface.
type Chart struct {
	Layout      Layout
	Title       string
	Description string

	Cells  []Cell
	XAxis  Axis
	YAxis  Axis
	Legend Legend

	RenderID   string
	RenderedAt time.Time
}

// Cell is one year × month rectangle.
type Cell struct {
	X, Y          float64
	Width, Height float64

	Year        int
	MonthIndex  int // zero-based
	MonthName   string
	Temperature float64
	Variance    float64
	Fill        string
}

// Tick is a labelled position along an axis.
type Tick struct {
	Offset float64
	Label  string
}

// Axis is a tick axis spanning [Start, Stop] along its direction.
type Axis struct {
	Start float64
	Stop  float64
	Ticks []Tick
}

// Swatch is one legend colour sample.
type Swatch struct {
	X           float64
	Width       float64
	Fill        string
	Temperature float64
}

// Legend is the colour key drawn below the plot.
type Legend struct {
	X, Y     float64
	Width    float64
	Height   float64
	Swatches []Swatch
	Ticks    []Tick
}

// Compose lays out the chart for a dataset using scales built from it.
func Compose(ds domain.Dataset, set scale.Set, layout Layout) (*Chart, error) {
	cells, err := composeCells(ds, set)
	if err != nil {
		return nil, err
	}
	ranges := layout.Ranges()
	return &Chart{
		Layout:      layout,
		Title:       Title,
		Description: describe(ds),
		Cells:       cells,
		XAxis:       composeXAxis(set.Year, ranges.X, layout.YearTickEvery),
		YAxis:       composeYAxis(set.Month, ranges.Y),
		Legend:      composeLegend(ds.Baseline, set.Color, layout),
	}, nil
}

func composeCells(ds domain.Dataset, set scale.Set) ([]Cell, error) {
	cells := make([]Cell, 0, len(ds.Records))
	for _, rec := range ds.Records {
		x, ok := set.YearToX(rec.Year)
		if !ok {
			return nil, fmt.Errorf("compose chart: year %d outside year scale", rec.Year)
		}
		y, ok := set.MonthToY(rec.Month)
		if !ok {
			return nil, fmt.Errorf("compose chart: month %d outside month scale", rec.Month)
		}
		cells = append(cells, Cell{
			X:           x,
			Y:           y,
			Width:       set.Year.Bandwidth(),
			Height:      set.Month.Bandwidth(),
			Year:        rec.Year,
			MonthIndex:  domain.MonthIndex(rec.Month),
			MonthName:   domain.MonthName(rec.Month),
			Temperature: domain.Temperature(ds.Baseline, rec.Variance),
			Variance:    rec.Variance,
			Fill:        set.VarianceToColor(rec.Variance),
		})
	}
	return cells, nil
}

func composeXAxis(years *scale.Band[int], r scale.Range, every int) Axis {
	axis := Axis{Start: r.Start, Stop: r.Stop}
	for _, year := range years.Domain() {
		if every > 0 && year%every != 0 {
			continue
		}
		x, _ := years.Center(year)
		axis.Ticks = append(axis.Ticks, Tick{Offset: x, Label: strconv.Itoa(year)})
	}
	return axis
}

func composeYAxis(months *scale.Band[string], r scale.Range) Axis {
	axis := Axis{Start: r.Start, Stop: r.Stop}
	for _, name := range months.Domain() {
		y, _ := months.Center(name)
		axis.Ticks = append(axis.Ticks, Tick{Offset: y, Label: name})
	}
	return axis
}

// composeLegend samples the colour scale at the left edge of each swatch,
// i.e. at min + i/n·(max−min), and labels a linear axis in absolute degrees.
func composeLegend(baseline float64, colors *scale.Sequential, layout Layout) Legend {
	lo, hi := colors.Domain()
	axis := scale.NewLinear(lo, hi, 0, layout.LegendWidth)

	legend := Legend{
		X:      (layout.Width - layout.LegendWidth) / 2,
		Y:      layout.Height - layout.Padding + layout.LegendOffset,
		Width:  layout.LegendWidth,
		Height: layout.LegendHeight,
	}

	n := max(layout.LegendSwatches, 1)
	width := layout.LegendWidth / float64(n)
	for i := range n {
		x := float64(i) * width
		variance := axis.Invert(x)
		legend.Swatches = append(legend.Swatches, Swatch{
			X:           x,
			Width:       width,
			Fill:        colors.Color(variance),
			Temperature: domain.Temperature(baseline, variance),
		})
	}

	for _, v := range axis.Ticks(layout.LegendTicks) {
		legend.Ticks = append(legend.Ticks, Tick{
			Offset: axis.Map(v),
			Label:  domain.FormatCelsius(domain.Temperature(baseline, v)),
		})
	}
	return legend
}

func describe(ds domain.Dataset) string {
	first, last, ok := ds.YearSpan()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d - %d: base temperature %s", first, last, domain.FormatCelsius(ds.Baseline))
}
