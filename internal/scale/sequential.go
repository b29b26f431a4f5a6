package scale

import (
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Sequential maps a continuous domain [Min, Max] onto an interpolator.
type Sequential struct {
	min, max float64
	interp   Interpolator
}

// NewSequential builds a sequential scale over [lo, hi].
func NewSequential(lo, hi float64, interp Interpolator) *Sequential {
	return &Sequential{min: lo, max: hi, interp: interp}
}

// BuildColorScale builds the variance colour scale. The domain is the
// [min, max] variance found by a single scan of records.
func BuildColorScale(records []domain.AnomalyRecord, scheme string) (*Sequential, error) {
	lo, hi, err := VarianceExtent(records)
	if err != nil {
		return nil, err
	}
	interp, err := LookupScheme(scheme)
	if err != nil {
		return nil, err
	}
	return NewSequential(lo, hi, interp), nil
}

// VarianceExtent returns the minimum and maximum variance in one pass.
func VarianceExtent(records []domain.AnomalyRecord) (lo, hi float64, err error) {
	if len(records) == 0 {
		return 0, 0, ErrNoData
	}
	lo, hi = records[0].Variance, records[0].Variance
	for _, rec := range records[1:] {
		lo = min(lo, rec.Variance)
		hi = max(hi, rec.Variance)
	}
	return lo, hi, nil
}

// Domain returns the [min, max] interval the scale was built over.
func (s *Sequential) Domain() (lo, hi float64) { return s.min, s.max }

// Normalize maps v to t in [0, 1]. A zero-width domain maps everything to 0.5.
func (s *Sequential) Normalize(v float64) float64 {
	if s.max == s.min {
		return 0.5
	}
	return (v - s.min) / (s.max - s.min)
}

// Color returns the hex colour for v.
func (s *Sequential) Color(v float64) string {
	return Hex(s.interp(s.Normalize(v)))
}
