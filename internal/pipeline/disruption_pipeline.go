package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chainwatch/internal/logger"
	"chainwatch/internal/metrics"
	"chainwatch/internal/monitor"
	"chainwatch/pkg/models"
)

// DisruptionPipeline consumes disruption records off a queue, feeds
// them through the monitor, and writes the resulting alerts. The
// monitor is driven from a single goroutine; its own lock covers
// report calls made from elsewhere.
type DisruptionPipeline struct {
	consumer       Consumer
	monitor        *monitor.Monitor
	writer         AlertWriter
	batchSize      int
	flushInterval  time.Duration
	reportInterval time.Duration
}

// NewDisruptionPipeline creates a pipeline.
func NewDisruptionPipeline(consumer Consumer, mon *monitor.Monitor, writer AlertWriter, batchSize int, flushInterval, reportInterval time.Duration) *DisruptionPipeline {
	return &DisruptionPipeline{
		consumer:       consumer,
		monitor:        mon,
		writer:         writer,
		batchSize:      batchSize,
		flushInterval:  flushInterval,
		reportInterval: reportInterval,
	}
}

// Run starts the pipeline loop and blocks until ctx is canceled.
func (p *DisruptionPipeline) Run(ctx context.Context) error {
	logger.Infof("Disruption pipeline started")

	if p.batchSize <= 0 {
		p.batchSize = 100
	}
	if p.flushInterval <= 0 {
		p.flushInterval = 2 * time.Second
	}

	alertCh := make(chan *models.Alert, p.batchSize*2)

	go p.readLoop(ctx, alertCh)

	p.writeLoop(ctx, alertCh)
	return ctx.Err()
}

// Close releases pipeline resources.
func (p *DisruptionPipeline) Close() error {
	if p.writer != nil {
		if err := p.writer.Close(); err != nil {
			logger.Errorf("Failed to close alert writer: %v", err)
		}
	}
	if p.consumer != nil {
		return p.consumer.Close()
	}
	return nil
}

func (p *DisruptionPipeline) readLoop(ctx context.Context, out chan<- *models.Alert) {
	defer close(out)

	for {
		payload, err := p.consumer.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Errorf("Failed to pop queue message: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if payload == nil {
			continue
		}

		alert, err := p.process(payload)
		if err != nil {
			logger.Warnf("Failed to process disruption: %v", err)
			continue
		}

		metrics.ActiveDisruptions.Set(float64(p.monitor.ActiveCount()))

		select {
		case out <- alert:
		case <-ctx.Done():
			return
		}
	}
}

func (p *DisruptionPipeline) process(payload []byte) (*models.Alert, error) {
	var d models.Disruption
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("%w: decode record: %v", monitor.ErrProcessing, err)
	}

	// Queue records from upstream detectors may arrive without an id.
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now().UTC()
	}

	alert, err := p.monitor.Ingest(d)
	if err != nil {
		if errors.Is(err, monitor.ErrInvalidDisruption) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", monitor.ErrProcessing, err)
	}
	return alert, nil
}

func (p *DisruptionPipeline) writeLoop(ctx context.Context, in <-chan *models.Alert) {
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	var reportCh <-chan time.Time
	if p.reportInterval > 0 {
		reportTicker := time.NewTicker(p.reportInterval)
		defer reportTicker.Stop()
		reportCh = reportTicker.C
	}

	var batch []*models.Alert

	flush := func() {
		if p.writer == nil || len(batch) == 0 {
			return
		}
		for {
			if err := p.writer.WriteAlerts(batch); err != nil {
				logger.Errorf("Failed to write alerts: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(1 * time.Second):
				}
				continue
			}
			batch = nil
			break
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-ticker.C:
			flush()
		case <-reportCh:
			p.logSummary()
		case alert, ok := <-in:
			if !ok {
				flush()
				return
			}
			batch = append(batch, alert)
			if len(batch) >= p.batchSize {
				flush()
			}
		}
	}
}

func (p *DisruptionPipeline) logSummary() {
	report := p.monitor.SummaryReport()
	logger.Infof("Summary: active=%d critical=%d high=%d medium=%d low=%d projected_cost=%.2f alerts_total=%d",
		report.Summary.TotalActiveDisruptions,
		report.Summary.CriticalAlerts,
		report.Summary.HighAlerts,
		report.Summary.MediumAlerts,
		report.Summary.LowAlerts,
		report.Summary.TotalEstimatedCost,
		report.Summary.TotalAlertsGenerated,
	)
}
