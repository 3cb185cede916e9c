package monitor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"chainwatch/internal/rules"
	"chainwatch/pkg/models"
)

// Error kinds surfaced by Ingest. Invalid input is rejected before the
// disruption is registered; processing failures cover everything else.
var (
	ErrInvalidDisruption = errors.New("invalid disruption")
	ErrProcessing        = errors.New("disruption processing failed")
)

// Observer receives ingest outcomes. Implementations must not retain
// or mutate the alert.
type Observer interface {
	AlertGenerated(alert *models.Alert)
	IngestFailed(d *models.Disruption, err error)
}

// Config configures a Monitor.
type Config struct {
	ID        string
	Rules     rules.Engine
	Observers []Observer
}

// Monitor tracks active disruptions and the cumulative alert history.
// All methods are safe for concurrent use; ingest performs a
// read-modify-write over both collections under a single lock.
type Monitor struct {
	mu        sync.Mutex
	id        string
	active    map[string]models.Disruption
	history   []*models.Alert
	rules     rules.Engine
	observers []Observer
	now       func() time.Time
}

// New creates an empty monitor.
func New(cfg Config) *Monitor {
	if cfg.ID == "" {
		cfg.ID = "risk_monitor_001"
	}
	return &Monitor{
		id:        cfg.ID,
		active:    make(map[string]models.Disruption),
		rules:     cfg.Rules,
		observers: cfg.Observers,
		now:       time.Now,
	}
}

// ID returns the monitor identifier.
func (m *Monitor) ID() string {
	return m.id
}

// Ingest registers a disruption, scores it, and returns the generated
// alert. Registration and alert emission are atomic: a rejected or
// failed ingest leaves both the active set and the history untouched.
// Re-using an id overwrites the prior active entry; every successful
// call appends one alert to the history.
func (m *Monitor) Ingest(d models.Disruption) (*models.Alert, error) {
	if err := d.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidDisruption, err)
		m.notifyError(&d, err)
		return nil, err
	}

	score := RiskScore(d)
	alert := m.buildAlert(d, score)

	m.mu.Lock()
	m.active[d.ID] = d
	m.history = append(m.history, alert)
	m.mu.Unlock()

	m.notifyAlert(alert)
	return alert, nil
}

func (m *Monitor) buildAlert(d models.Disruption, score float64) *models.Alert {
	alert := &models.Alert{
		AlertID:   "ALERT_" + d.ID,
		Timestamp: m.now(),
		Disruption: models.DisruptionSnapshot{
			ID:                d.ID,
			Type:              d.Type,
			Title:             d.Title,
			Description:       d.Description,
			Severity:          d.Severity,
			Location:          d.Location,
			AffectedRegions:   d.AffectedRegions,
			AffectedSuppliers: d.AffectedSuppliers,
		},
		RiskAssessment: models.RiskAssessment{
			RiskScore:           round2(score),
			EstimatedImpactDays: d.EstimatedImpactDays,
			EstimatedDailyCost:  d.EstimatedCostPerDay,
			TotalEstimatedCost:  d.TotalEstimatedCost(),
			Confidence:          d.Confidence,
		},
		RecommendedActions: Recommendations(d, score),
		Urgency:            Urgency(score),
	}
	if m.rules != nil {
		alert.WatchTags = m.rules.Apply(&d)
	}
	return alert
}

// ActiveCount returns the number of currently tracked disruptions.
func (m *Monitor) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// AlertCount returns the number of alerts generated so far.
func (m *Monitor) AlertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

func (m *Monitor) notifyAlert(alert *models.Alert) {
	for _, obs := range m.observers {
		obs.AlertGenerated(alert)
	}
}

func (m *Monitor) notifyError(d *models.Disruption, err error) {
	for _, obs := range m.observers {
		obs.IngestFailed(d, err)
	}
}
