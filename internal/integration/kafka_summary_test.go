//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/kafka"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSummaryTopic = "test-heatmap-renders"

type summaryMessage struct {
	Summary domain.RenderSummary
	Key     string
	Headers map[string]string
}

func readSummary(ctx context.Context, t *testing.T, consumer *kafkago.Reader) summaryMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from summary topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var summary domain.RenderSummary
	require.NoError(t, json.Unmarshal(msg.Value, &summary), "unmarshal summary message")

	return summaryMessage{Summary: summary, Key: string(msg.Key), Headers: headers}
}

func newConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSummaryTopic,
		GroupID:     fmt.Sprintf("test-summaries-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestPipelinePublishesSummary renders against a stub dataset server and a
// real broker, then reads the summary back off the topic.
func TestPipelinePublishesSummary(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSummaryTopic)

	cfg := &config.Config{
		KafkaEnabled: true,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testSummaryTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	dataset := serveDataset(t, http.StatusOK, datasetJSON)
	loader := source.NewClient(dataset.URL, 10*time.Second, discardLogger())
	p := pipeline.New(loader, writer, render.DefaultLayout(), scale.DefaultScheme,
		discardLogger(), observability.NewMetricsForTesting())

	chart, err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, chart.Cells, 4)

	sm := readSummary(ctx, t, newConsumer(t, broker))
	assert.Equal(t, chart.RenderID, sm.Key)
	assert.Equal(t, chart.RenderID, sm.Headers["render_id"])
	_, err = time.Parse(time.RFC3339, sm.Headers["rendered_at"])
	assert.NoError(t, err, "rendered_at should be valid RFC3339")

	assert.Equal(t, chart.RenderID, sm.Summary.RenderID)
	assert.Equal(t, 4, sm.Summary.Records)
	assert.Equal(t, 2000, sm.Summary.FirstYear)
	assert.Equal(t, 2002, sm.Summary.LastYear)
	assert.InDelta(t, 8.0, sm.Summary.Baseline, 1e-9)
	assert.InDelta(t, -2.0, sm.Summary.VarianceMin, 1e-9)
	assert.InDelta(t, 1.5, sm.Summary.VarianceMax, 1e-9)
	assert.Equal(t, scale.DefaultScheme, sm.Summary.Scheme)
}

// TestPipelineFailureDoesNotPublish checks a failed load leaves the topic empty.
func TestPipelineFailureDoesNotPublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSummaryTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testSummaryTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	dataset := serveDataset(t, http.StatusServiceUnavailable, "maintenance")
	loader := source.NewClient(dataset.URL, 10*time.Second, discardLogger())
	p := pipeline.New(loader, writer, render.DefaultLayout(), scale.DefaultScheme,
		discardLogger(), observability.NewMetricsForTesting())

	chart, err := p.Run(ctx)
	require.Error(t, err)
	assert.Nil(t, chart)

	consumer := newConsumer(t, broker)
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no summary on the topic")
}
