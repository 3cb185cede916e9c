package alertkafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"chainwatch/pkg/models"
)

// Writer publishes alerts to a Kafka topic, keyed by alert id so
// re-ingested disruptions land in the same partition.
type Writer struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// Config configures the Kafka writer.
type Config struct {
	Brokers []string
	Topic   string
	Timeout time.Duration
}

// NewWriter creates a Kafka writer.
func NewWriter(cfg Config) (*Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are empty")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Writer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 250 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		timeout: timeout,
	}, nil
}

// WriteAlerts publishes a batch of alerts.
func (w *Writer) WriteAlerts(alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(alerts))
	for _, alert := range alerts {
		body, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("failed to marshal alert: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(alert.AlertID),
			Value: body,
			Time:  alert.Timestamp,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

// Close closes the Kafka writer.
func (w *Writer) Close() error {
	return w.writer.Close()
}
