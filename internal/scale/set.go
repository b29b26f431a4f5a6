package scale

import (
	"fmt"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Ranges are the pixel intervals the band scales span.
type Ranges struct {
	X Range
	Y Range
}

// Set bundles the three scales every visual element shares.
type Set struct {
	Year  *Band[int]
	Month *Band[string]
	Color *Sequential
}

// Build derives the scale set for a dataset. It fails with ErrNoData when
// the dataset has no records.
func Build(ds domain.Dataset, r Ranges, scheme string) (Set, error) {
	if len(ds.Records) == 0 {
		return Set{}, fmt.Errorf("build scales: %w", ErrNoData)
	}
	years, err := BuildYearScale(ds.Records, r.X)
	if err != nil {
		return Set{}, fmt.Errorf("build year scale: %w", err)
	}
	colors, err := BuildColorScale(ds.Records, scheme)
	if err != nil {
		return Set{}, fmt.Errorf("build color scale: %w", err)
	}
	return Set{
		Year:  years,
		Month: BuildMonthScale(domain.MonthNames, r.Y),
		Color: colors,
	}, nil
}

// YearToX returns the band start for year.
func (s Set) YearToX(year int) (float64, bool) { return s.Year.Position(year) }

// MonthToY returns the band start for a 1–12 month.
func (s Set) MonthToY(month int) (float64, bool) {
	name := domain.MonthName(month)
	if name == "" {
		return 0, false
	}
	return s.Month.Position(name)
}

// VarianceToColor returns the fill colour for a variance.
func (s Set) VarianceToColor(v float64) string { return s.Color.Color(v) }
