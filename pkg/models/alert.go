package models

import "time"

// Alert is the structured output produced for each ingested disruption.
// It is never mutated after creation.
type Alert struct {
	AlertID            string             `json:"alert_id"`
	Timestamp          time.Time          `json:"timestamp"`
	Disruption         DisruptionSnapshot `json:"disruption"`
	RiskAssessment     RiskAssessment     `json:"risk_assessment"`
	RecommendedActions []string           `json:"recommended_actions"`
	Urgency            string             `json:"urgency"`
	WatchTags          []WatchTag         `json:"watch_tags,omitempty"`
}

// DisruptionSnapshot carries the public fields of the disruption the
// alert was built from.
type DisruptionSnapshot struct {
	ID                string         `json:"id"`
	Type              DisruptionType `json:"type"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Severity          SeverityLevel  `json:"severity"`
	Location          string         `json:"location"`
	AffectedRegions   []string       `json:"affected_regions"`
	AffectedSuppliers []string       `json:"affected_suppliers"`
}

// RiskAssessment holds the computed score and cost projections.
type RiskAssessment struct {
	RiskScore           float64 `json:"risk_score"`
	EstimatedImpactDays int     `json:"estimated_impact_days"`
	EstimatedDailyCost  float64 `json:"estimated_daily_cost"`
	TotalEstimatedCost  float64 `json:"total_estimated_cost"`
	Confidence          float64 `json:"confidence"`
}
