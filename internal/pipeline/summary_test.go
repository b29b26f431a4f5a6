package pipeline

import (
	"testing"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	ds := domain.Dataset{Baseline: 8.0, Records: []domain.AnomalyRecord{
		{Year: 2001, Month: 3, Variance: 0.5},
		{Year: 1999, Month: 1, Variance: -0.75},
	}}
	set, err := scale.Build(ds, render.DefaultLayout().Ranges(), "RdBu")
	require.NoError(t, err)

	at := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	chart := &render.Chart{RenderID: "r-1", RenderedAt: at}

	s := summarize(ds, set, chart, "RdBu")
	assert.Equal(t, "r-1", s.RenderID)
	assert.Equal(t, at, s.RenderedAt)
	assert.Equal(t, 2, s.Records)
	assert.Equal(t, 1999, s.FirstYear)
	assert.Equal(t, 2001, s.LastYear)
	assert.InDelta(t, -0.75, s.VarianceMin, 1e-12)
	assert.InDelta(t, 0.5, s.VarianceMax, 1e-12)
	assert.Equal(t, "RdBu", s.Scheme)
}
