package monitor

import (
	"reflect"
	"testing"
	"time"

	"chainwatch/pkg/models"
)

func ingestScenarios(t *testing.T, m *Monitor) {
	t.Helper()
	scenarios := []models.Disruption{
		{
			ID: "DISRUPT_001", Type: models.TypeWeather, Title: "Hurricane Milton",
			Severity: models.SeverityCritical, EstimatedImpactDays: 7,
			EstimatedCostPerDay: 500000, Confidence: 0.95,
		},
		{
			ID: "DISRUPT_002", Type: models.TypeSupplier, Title: "Chip Fab Maintenance",
			Severity: models.SeverityMedium, EstimatedImpactDays: 14,
			EstimatedCostPerDay: 75000, Confidence: 1.0,
		},
		{
			ID: "DISRUPT_003", Type: models.TypeTransportation, Title: "Suez Delays",
			Severity: models.SeverityHigh, EstimatedImpactDays: 3,
			EstimatedCostPerDay: 250000, Confidence: 0.85,
		},
		{
			ID: "DISRUPT_004", Type: models.TypeGeopolitical, Title: "LA Port Strike",
			Severity: models.SeverityCritical, EstimatedImpactDays: 10,
			EstimatedCostPerDay: 800000, Confidence: 0.90,
		},
	}
	for _, d := range scenarios {
		if _, err := m.Ingest(d); err != nil {
			t.Fatalf("ingest %s: %v", d.ID, err)
		}
	}
}

func TestSummaryReportAggregatesActiveSet(t *testing.T) {
	m := New(Config{})
	m.now = testClock()
	ingestScenarios(t, m)

	report := m.SummaryReport()
	if report.MonitorID != "risk_monitor_001" {
		t.Fatalf("unexpected monitor id: %s", report.MonitorID)
	}
	if report.Summary.TotalActiveDisruptions != 4 {
		t.Fatalf("expected 4 active disruptions, got %d", report.Summary.TotalActiveDisruptions)
	}
	if report.Summary.CriticalAlerts != 2 {
		t.Fatalf("expected 2 critical, got %d", report.Summary.CriticalAlerts)
	}
	if report.Summary.HighAlerts != 1 || report.Summary.MediumAlerts != 1 || report.Summary.LowAlerts != 0 {
		t.Fatalf("unexpected severity counts: %+v", report.Summary)
	}
	if report.Summary.TotalAlertsGenerated != 4 {
		t.Fatalf("expected 4 alerts generated, got %d", report.Summary.TotalAlertsGenerated)
	}

	// 7*500k + 14*75k + 3*250k + 10*800k
	want := 3_500_000.0 + 1_050_000 + 750_000 + 8_000_000
	if report.Summary.TotalEstimatedCost != want {
		t.Fatalf("expected total cost %v, got %v", want, report.Summary.TotalEstimatedCost)
	}
}

func TestSummaryReportEmptyMonitor(t *testing.T) {
	m := New(Config{})
	report := m.SummaryReport()
	if report.Summary.TotalActiveDisruptions != 0 || report.Summary.TotalAlertsGenerated != 0 {
		t.Fatalf("expected empty summary, got %+v", report.Summary)
	}
	if report.Summary.TotalEstimatedCost != 0 {
		t.Fatalf("expected zero cost, got %v", report.Summary.TotalEstimatedCost)
	}
	if len(report.ActiveDisruptions) != 0 {
		t.Fatalf("expected empty view, got %v", report.ActiveDisruptions)
	}
}

func TestActiveDisruptionsViewOrderedByID(t *testing.T) {
	m := New(Config{})
	ingestScenarios(t, m)

	view := m.ActiveDisruptions()
	if len(view) != 4 {
		t.Fatalf("expected 4 summaries, got %d", len(view))
	}
	for i := 1; i < len(view); i++ {
		if view[i-1].ID >= view[i].ID {
			t.Fatalf("view not ordered by id: %s >= %s", view[i-1].ID, view[i].ID)
		}
	}
	if view[0].Title != "Hurricane Milton" || view[0].Type != models.TypeWeather {
		t.Fatalf("unexpected first summary: %+v", view[0])
	}
}

func TestViewsAreIdempotentWithoutIngest(t *testing.T) {
	m := New(Config{})
	m.now = testClock()
	ingestScenarios(t, m)

	first := m.ActiveDisruptions()
	second := m.ActiveDisruptions()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("active views differ: %v vs %v", first, second)
	}

	r1 := m.SummaryReport()
	r2 := m.SummaryReport()
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("reports differ: %+v vs %+v", r1, r2)
	}
}

func TestReportTimestampComesFromClock(t *testing.T) {
	m := New(Config{})
	fixed := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	if got := m.SummaryReport().ReportTimestamp; !got.Equal(fixed) {
		t.Fatalf("expected report timestamp %v, got %v", fixed, got)
	}
}
