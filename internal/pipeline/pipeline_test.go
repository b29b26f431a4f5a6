package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLoader struct {
	dataset domain.Dataset
	err     error
	calls   int
}

func (m *mockLoader) Load(_ context.Context) (domain.Dataset, error) {
	m.calls++
	return m.dataset, m.err
}

type mockPublisher struct {
	summaries []domain.RenderSummary
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, summary domain.RenderSummary) error {
	m.summaries = append(m.summaries, summary)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func sampleDataset() domain.Dataset {
	return domain.Dataset{
		Baseline: 8.66,
		Records: []domain.AnomalyRecord{
			{Year: 1753, Month: 1, Variance: -1.366},
			{Year: 1753, Month: 2, Variance: -2.223},
			{Year: 1754, Month: 1, Variance: 0.4},
			{Year: 1754, Month: 12, Variance: 1.1},
		},
	}
}

func countLevel(logs, level string) int {
	n := 0
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		if strings.Contains(line, `"level":"`+level+`"`) {
			n++
		}
	}
	return n
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	ldr := &mockLoader{dataset: sampleDataset()}
	pub := &mockPublisher{}
	p := pipeline.New(ldr, pub, render.DefaultLayout(), scale.DefaultScheme, discardLogger(), newTestMetrics())

	require.Error(t, p.CheckReadiness(context.Background()))

	chart, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, chart)

	assert.Equal(t, 1, ldr.calls)
	assert.Len(t, chart.Cells, 4)
	assert.NotEmpty(t, chart.RenderID)
	assert.Equal(t, fakeClock.Now(), chart.RenderedAt)
	assert.NoError(t, p.CheckReadiness(context.Background()))

	require.Len(t, pub.summaries, 1)
	want := domain.RenderSummary{
		RenderID:    chart.RenderID,
		RenderedAt:  fakeClock.Now(),
		Records:     4,
		FirstYear:   1753,
		LastYear:    1754,
		Baseline:    8.66,
		VarianceMin: -2.223,
		VarianceMax: 1.1,
		Scheme:      scale.DefaultScheme,
	}
	if diff := cmp.Diff(want, pub.summaries[0], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_Run_RenderIDsAreUnique(t *testing.T) {
	p := pipeline.New(&mockLoader{dataset: sampleDataset()}, nil, render.DefaultLayout(), scale.DefaultScheme, discardLogger(), newTestMetrics())

	a, err := p.Run(context.Background())
	require.NoError(t, err)
	b, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a.RenderID, b.RenderID)
}

func TestPipeline_Run_LoadError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	loadErr := errors.New("connection refused")
	pub := &mockPublisher{}
	p := pipeline.New(&mockLoader{err: loadErr}, pub, render.DefaultLayout(), scale.DefaultScheme, logger, newTestMetrics())

	chart, err := p.Run(context.Background())
	require.ErrorIs(t, err, loadErr)
	assert.Nil(t, chart)
	assert.Empty(t, pub.summaries)
	assert.Error(t, p.CheckReadiness(context.Background()))

	assert.Equal(t, 1, countLevel(logs.String(), "ERROR"))
	assert.Contains(t, logs.String(), "load dataset failed")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestPipeline_Run_EmptyDataset(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	p := pipeline.New(&mockLoader{dataset: domain.Dataset{Baseline: 8.66}}, nil, render.DefaultLayout(), scale.DefaultScheme, logger, newTestMetrics())

	chart, err := p.Run(context.Background())
	require.ErrorIs(t, err, scale.ErrNoData)
	assert.Nil(t, chart)
	assert.Error(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, 1, countLevel(logs.String(), "ERROR"))
}

func TestPipeline_Run_UnknownScheme(t *testing.T) {
	p := pipeline.New(&mockLoader{dataset: sampleDataset()}, nil, render.DefaultLayout(), "Plasma", discardLogger(), newTestMetrics())

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, scale.ErrUnknownScheme)
}

func TestPipeline_Run_PublishErrorDoesNotFailRender(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	pub := &mockPublisher{err: errors.New("broker unavailable")}
	p := pipeline.New(&mockLoader{dataset: sampleDataset()}, pub, render.DefaultLayout(), scale.DefaultScheme, logger, newTestMetrics())

	chart, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, chart)
	assert.Len(t, pub.summaries, 1)
	assert.NoError(t, p.CheckReadiness(context.Background()))

	assert.Equal(t, 1, countLevel(logs.String(), "WARN"))
	assert.Equal(t, 0, countLevel(logs.String(), "ERROR"))
	assert.Contains(t, logs.String(), "broker unavailable")
}

func TestPipeline_Layout(t *testing.T) {
	layout := render.DefaultLayout()
	layout.Width = 1600
	p := pipeline.New(&mockLoader{}, nil, layout, scale.DefaultScheme, discardLogger(), newTestMetrics())
	assert.Equal(t, 1600.0, p.Layout().Width)
}
