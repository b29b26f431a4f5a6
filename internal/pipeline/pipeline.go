package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	"github.com/google/uuid"
)

// Loader fetches the dataset for one render.
type Loader interface {
	Load(ctx context.Context) (domain.Dataset, error)
}

// Publisher receives a summary of every successful render.
type Publisher interface {
	Publish(ctx context.Context, summary domain.RenderSummary) error
}

// Pipeline runs load → scale → compose for one page load.
type Pipeline struct {
	loader    Loader
	publisher Publisher
	layout    render.Layout
	scheme    string
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline. Pass a nil publisher to disable summaries.
func New(loader Loader, publisher Publisher, layout render.Layout, scheme string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    loader,
		publisher: publisher,
		layout:    layout,
		scheme:    scheme,
		logger:    logger,
		metrics:   metrics,
	}
}

// Layout returns the geometry charts are composed with.
func (p *Pipeline) Layout() render.Layout {
	return p.layout
}

// CheckReadiness returns nil once a render has succeeded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no heat map has been rendered yet")
	}
	return nil
}

// Run performs one render. On failure it logs the error once and returns it
// with a nil chart; no partial chart is ever returned.
func (p *Pipeline) Run(ctx context.Context) (*render.Chart, error) {
	start := time.Now()

	ds, err := p.loader.Load(ctx)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Error("load dataset failed", "error", err)
		p.metrics.RenderErrors.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	p.metrics.DatasetRecords.Set(float64(len(ds.Records)))

	set, err := scale.Build(ds, p.layout.Ranges(), p.scheme)
	if err != nil {
		p.logger.Error("build scales failed", "error", err, "records", len(ds.Records))
		p.metrics.RenderErrors.WithLabelValues("scale").Inc()
		return nil, err
	}

	chart, err := render.Compose(ds, set, p.layout)
	if err != nil {
		p.logger.Error("compose chart failed", "error", err)
		p.metrics.RenderErrors.WithLabelValues("compose").Inc()
		return nil, err
	}
	chart.RenderID = uuid.NewString()
	chart.RenderedAt = domain.Clock().Now()

	p.publish(ctx, summarize(ds, set, chart, p.scheme))

	p.ready.Store(true)
	p.metrics.RendersTotal.Inc()
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("heat map rendered",
		"render_id", chart.RenderID,
		"records", len(ds.Records),
		"cells", len(chart.Cells),
	)
	return chart, nil
}

// publish hands the summary to the publisher. Failures never fail the render.
func (p *Pipeline) publish(ctx context.Context, summary domain.RenderSummary) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, summary); err != nil {
		p.logger.Warn("publish render summary failed", "error", err, "render_id", summary.RenderID)
		p.metrics.SummariesPublished.WithLabelValues("error").Inc()
		return
	}
	p.metrics.SummariesPublished.WithLabelValues("success").Inc()
}
