package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/coastwatch/seawindow/internal/config"
	"github.com/coastwatch/seawindow/internal/report"
)

// Writer publishes batch verdict rows to a Kafka topic.
// It implements report.Publisher.
type Writer struct {
	writer  *kafkago.Writer
	variant string
	clock   clockwork.Clock
	logger  *slog.Logger
}

// verdictRecord is the serialized form of one row on the sink topic.
type verdictRecord struct {
	Slug        string    `json:"slug"`
	Label       string    `json:"label"`
	Family      string    `json:"family"`
	Expert      string    `json:"expert"`
	Variant     string    `json:"variant"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewWriter creates a Kafka producer for the configured verdict topic.
func NewWriter(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaVerdictTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, variant: cfg.Variant, clock: clock, logger: logger}
}

// Publish serializes a batch's rows and writes them to the verdict topic in a
// single WriteMessages call, keyed by spot slug so each spot's verdicts stay
// ordered within a partition.
func (w *Writer) Publish(ctx context.Context, rows []report.Row) error {
	if len(rows) == 0 {
		return nil
	}
	now := w.clock.Now()
	msgs := make([]kafkago.Message, len(rows))
	for i, row := range rows {
		msg, err := w.serializeToMessage(row, now)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func (w *Writer) serializeToMessage(row report.Row, now time.Time) (kafkago.Message, error) {
	rec := verdictRecord{
		Slug:        row.Slug,
		Label:       row.Label,
		Family:      row.Family,
		Expert:      row.Expert,
		Variant:     w.variant,
		GeneratedAt: now,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize verdict row: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(row.Slug),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "variant", Value: []byte(w.variant)},
			{Key: "generated_at", Value: []byte(now.Format(time.RFC3339))},
		},
	}, nil
}
