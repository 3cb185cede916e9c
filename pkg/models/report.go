package models

import "time"

// ActiveDisruption is the compact projection used by views and reports.
type ActiveDisruption struct {
	ID        string         `json:"id"`
	Type      DisruptionType `json:"type"`
	Title     string         `json:"title"`
	Severity  SeverityLevel  `json:"severity"`
	Location  string         `json:"location"`
	Timestamp time.Time      `json:"timestamp"`
}

// ReportSummary aggregates the current active set.
type ReportSummary struct {
	TotalActiveDisruptions int     `json:"total_active_disruptions"`
	CriticalAlerts         int     `json:"critical_alerts"`
	HighAlerts             int     `json:"high_alerts"`
	MediumAlerts           int     `json:"medium_alerts"`
	LowAlerts              int     `json:"low_alerts"`
	TotalEstimatedCost     float64 `json:"total_estimated_cost"`
	TotalAlertsGenerated   int     `json:"total_alerts_generated"`
}

// Report is a point-in-time summary of all monitored disruptions.
type Report struct {
	MonitorID         string             `json:"monitor_id"`
	ReportTimestamp   time.Time          `json:"report_timestamp"`
	Summary           ReportSummary      `json:"summary"`
	ActiveDisruptions []ActiveDisruption `json:"active_disruptions"`
}
