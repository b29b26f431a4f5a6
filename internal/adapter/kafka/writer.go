package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces render summaries to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured summary topic.
// Publish is called with one summary per render, so batches are flushed as
// soon as they hold a single message.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one render summary, keyed by render ID.
func (w *Writer) Publish(ctx context.Context, summary domain.RenderSummary) error {
	msg, err := serializeToMessage(summary)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write render summary: %w", err)
	}
	w.logger.Debug("render summary published", "render_id", summary.RenderID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RenderSummary into a Kafka message.
func serializeToMessage(summary domain.RenderSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize render summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.RenderID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "render_id", Value: []byte(summary.RenderID)},
			{Key: "rendered_at", Value: []byte(summary.RenderedAt.Format(time.RFC3339))},
		},
	}, nil
}
