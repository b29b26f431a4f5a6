package scale

import (
	"slices"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Range is a pixel interval [Start, Stop].
type Range struct {
	Start float64
	Stop  float64
}

// Band divides a Range into equal-width bands, one per domain value, in
// domain order. Inner and outer padding are zero so adjacent bands touch.
type Band[K comparable] struct {
	domain []K
	index  map[K]int
	rng    Range
	step   float64
}

// NewBand builds a band scale over the given ordered, duplicate-free domain.
func NewBand[K comparable](values []K, r Range) *Band[K] {
	b := &Band[K]{
		domain: slices.Clone(values),
		index:  make(map[K]int, len(values)),
		rng:    r,
	}
	for i, v := range b.domain {
		b.index[v] = i
	}
	if n := len(b.domain); n > 0 {
		b.step = (r.Stop - r.Start) / float64(n)
	}
	return b
}

// Position returns the start offset of v's band.
func (b *Band[K]) Position(v K) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.rng.Start + b.step*float64(i), true
}

// Center returns the midpoint of v's band, where axis ticks are drawn.
func (b *Band[K]) Center(v K) (float64, bool) {
	x, ok := b.Position(v)
	if !ok {
		return 0, false
	}
	return x + b.Bandwidth()/2, true
}

// Bandwidth is the width of every band.
func (b *Band[K]) Bandwidth() float64 { return b.step }

// Step is the distance between the starts of adjacent bands.
func (b *Band[K]) Step() float64 { return b.step }

// Domain returns a copy of the domain in band order.
func (b *Band[K]) Domain() []K { return slices.Clone(b.domain) }

// Range returns the pixel interval the bands span.
func (b *Band[K]) Range() Range { return b.rng }

// BuildYearScale builds the year band scale. The domain is the sorted set of
// distinct years found in records.
func BuildYearScale(records []domain.AnomalyRecord, r Range) (*Band[int], error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	years := make([]int, 0, len(records))
	for _, rec := range records {
		years = append(years, rec.Year)
	}
	slices.Sort(years)
	return NewBand(slices.Compact(years), r), nil
}

// BuildMonthScale builds the month band scale over the fixed month names.
// It does not depend on the dataset.
func BuildMonthScale(monthNames []string, r Range) *Band[string] {
	return NewBand(monthNames, r)
}
