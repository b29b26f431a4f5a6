package pipeline

import (
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
)

// summarize condenses a finished render into the event the publisher emits.
func summarize(ds domain.Dataset, set scale.Set, chart *render.Chart, scheme string) domain.RenderSummary {
	first, last, _ := ds.YearSpan()
	lo, hi := set.Color.Domain()
	return domain.RenderSummary{
		RenderID:    chart.RenderID,
		RenderedAt:  chart.RenderedAt,
		Records:     len(ds.Records),
		FirstYear:   first,
		LastYear:    last,
		Baseline:    ds.Baseline,
		VarianceMin: lo,
		VarianceMax: hi,
		Scheme:      scheme,
	}
}
