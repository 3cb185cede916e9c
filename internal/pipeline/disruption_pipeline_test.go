package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"chainwatch/internal/monitor"
	"chainwatch/pkg/models"
)

type fakeConsumer struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (c *fakeConsumer) Pop(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.payloads) == 0 {
		// Emulate an idle queue until the pipeline is canceled.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
			return nil, nil
		}
	}
	payload := c.payloads[0]
	c.payloads = c.payloads[1:]
	return payload, nil
}

func (c *fakeConsumer) Close() error { return nil }

type capturingWriter struct {
	mu     sync.Mutex
	alerts []*models.Alert
	gotOne chan struct{}
	once   sync.Once
}

func (w *capturingWriter) WriteAlerts(alerts []*models.Alert) error {
	w.mu.Lock()
	w.alerts = append(w.alerts, alerts...)
	w.mu.Unlock()
	w.once.Do(func() { close(w.gotOne) })
	return nil
}

func (w *capturingWriter) Close() error { return nil }

func encodeDisruption(t *testing.T, d models.Disruption) []byte {
	t.Helper()
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal disruption: %v", err)
	}
	return raw
}

func TestPipelineIngestsAndWritesAlerts(t *testing.T) {
	valid := models.Disruption{
		ID:                  "PIPE_001",
		Type:                models.TypeTransportation,
		Title:               "Rail freight backlog",
		Severity:            models.SeverityHigh,
		EstimatedImpactDays: 4,
		EstimatedCostPerDay: 120000,
		Confidence:          0.8,
	}
	invalid := valid
	invalid.ID = "PIPE_002"
	invalid.Confidence = 2.0

	consumer := &fakeConsumer{payloads: [][]byte{
		encodeDisruption(t, valid),
		encodeDisruption(t, invalid),
		[]byte("{not json"),
	}}
	writer := &capturingWriter{gotOne: make(chan struct{})}
	mon := monitor.New(monitor.Config{})

	pipe := NewDisruptionPipeline(consumer, mon, writer, 10, 10*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pipe.Run(ctx) }()

	select {
	case <-writer.gotOne:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for alert flush")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("unexpected run error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pipeline did not stop")
	}

	writer.mu.Lock()
	defer writer.mu.Unlock()
	if len(writer.alerts) != 1 {
		t.Fatalf("expected 1 written alert, got %d", len(writer.alerts))
	}
	if writer.alerts[0].AlertID != "ALERT_PIPE_001" {
		t.Fatalf("unexpected alert id: %s", writer.alerts[0].AlertID)
	}

	// Invalid and malformed records must not register.
	if mon.ActiveCount() != 1 {
		t.Fatalf("expected 1 active disruption, got %d", mon.ActiveCount())
	}
}

func TestPipelineAssignsIDWhenMissing(t *testing.T) {
	anonymous := models.Disruption{
		Type:       models.TypeWeather,
		Title:      "Unnamed storm cell",
		Severity:   models.SeverityLow,
		Confidence: 0.4,
	}

	consumer := &fakeConsumer{payloads: [][]byte{encodeDisruption(t, anonymous)}}
	writer := &capturingWriter{gotOne: make(chan struct{})}
	mon := monitor.New(monitor.Config{})

	pipe := NewDisruptionPipeline(consumer, mon, writer, 10, 10*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pipe.Run(ctx) }()

	select {
	case <-writer.gotOne:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for alert flush")
	}
	cancel()
	<-done

	writer.mu.Lock()
	defer writer.mu.Unlock()
	if len(writer.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(writer.alerts))
	}
	if writer.alerts[0].Disruption.ID == "" {
		t.Fatalf("expected generated id, got empty")
	}
	if writer.alerts[0].AlertID == "ALERT_" {
		t.Fatalf("alert id missing generated suffix")
	}
}
