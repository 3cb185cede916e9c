package monitor

import (
	"chainwatch/internal/logger"
	"chainwatch/pkg/models"
)

// LogObserver logs ingest outcomes. Logging stays out of the scoring
// path so the engine itself carries no instrumentation.
type LogObserver struct{}

// AlertGenerated logs a generated alert.
func (LogObserver) AlertGenerated(alert *models.Alert) {
	logger.Infof("New disruption detected: %s (Severity: %s, Risk Score: %.2f, Urgency: %s)",
		alert.Disruption.Title, alert.Disruption.Severity, alert.RiskAssessment.RiskScore, alert.Urgency)
}

// IngestFailed logs a rejected or failed ingest.
func (LogObserver) IngestFailed(d *models.Disruption, err error) {
	id := ""
	if d != nil {
		id = d.ID
	}
	logger.Errorf("Error monitoring disruption %q: %v", id, err)
}
