package monitor

import (
	"sort"

	"chainwatch/pkg/models"
)

// ActiveDisruptions projects the active set into compact summaries,
// ordered by disruption id so repeated calls return identical views.
func (m *Monitor) ActiveDisruptions() []models.ActiveDisruption {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeView()
}

func (m *Monitor) activeView() []models.ActiveDisruption {
	out := make([]models.ActiveDisruption, 0, len(m.active))
	for _, d := range m.active {
		out = append(out, models.ActiveDisruption{
			ID:        d.ID,
			Type:      d.Type,
			Title:     d.Title,
			Severity:  d.Severity,
			Location:  d.Location,
			Timestamp: d.Timestamp,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SummaryReport aggregates the current active set: totals, per-severity
// counts (all four levels present), and the projected cost summed as
// impact days times daily cost per disruption. The cost total is
// emitted as a raw number; formatting belongs to presentation layers.
func (m *Monitor) SummaryReport() models.Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	summary := models.ReportSummary{
		TotalActiveDisruptions: len(m.active),
		TotalAlertsGenerated:   len(m.history),
	}
	for _, d := range m.active {
		switch d.Severity {
		case models.SeverityCritical:
			summary.CriticalAlerts++
		case models.SeverityHigh:
			summary.HighAlerts++
		case models.SeverityMedium:
			summary.MediumAlerts++
		case models.SeverityLow:
			summary.LowAlerts++
		}
		summary.TotalEstimatedCost += d.TotalEstimatedCost()
	}

	return models.Report{
		MonitorID:         m.id,
		ReportTimestamp:   m.now(),
		Summary:           summary,
		ActiveDisruptions: m.activeView(),
	}
}
