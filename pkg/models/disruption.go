package models

import (
	"fmt"
	"time"
)

// DisruptionType classifies the origin of a disruption event.
type DisruptionType string

const (
	TypeWeather         DisruptionType = "weather"
	TypeGeopolitical    DisruptionType = "geopolitical"
	TypeSupplier        DisruptionType = "supplier"
	TypeTransportation  DisruptionType = "transportation"
	TypeNaturalDisaster DisruptionType = "natural_disaster"
	TypePandemic        DisruptionType = "pandemic"
	TypeCyberSecurity   DisruptionType = "cyber_security"
)

// Valid reports whether t is a known disruption type.
func (t DisruptionType) Valid() bool {
	switch t {
	case TypeWeather, TypeGeopolitical, TypeSupplier, TypeTransportation,
		TypeNaturalDisaster, TypePandemic, TypeCyberSecurity:
		return true
	}
	return false
}

// SeverityLevel is an ordered severity classification.
type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "LOW"
	SeverityMedium   SeverityLevel = "MEDIUM"
	SeverityHigh     SeverityLevel = "HIGH"
	SeverityCritical SeverityLevel = "CRITICAL"
)

// Valid reports whether s is a known severity level.
func (s SeverityLevel) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank returns the position of s in the LOW < MEDIUM < HIGH < CRITICAL order.
func (s SeverityLevel) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// BaseScore returns the fixed base risk contribution for s.
func (s SeverityLevel) BaseScore() float64 {
	switch s {
	case SeverityLow:
		return 20
	case SeverityMedium:
		return 40
	case SeverityHigh:
		return 70
	case SeverityCritical:
		return 90
	default:
		return 0
	}
}

// Disruption describes one supply chain disruption event. Values are
// treated as immutable once ingested.
type Disruption struct {
	ID                  string         `json:"id"`
	Type                DisruptionType `json:"type"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Severity            SeverityLevel  `json:"severity"`
	Location            string         `json:"location"`
	AffectedRegions     []string       `json:"affected_regions"`
	AffectedSuppliers   []string       `json:"affected_suppliers"`
	EstimatedImpactDays int            `json:"estimated_impact_days"`
	EstimatedCostPerDay float64        `json:"estimated_cost_per_day"`
	Timestamp           time.Time      `json:"timestamp"`
	Source              string         `json:"source"`
	Confidence          float64        `json:"confidence"`
}

// Validate checks the record invariants: known type and severity,
// confidence in [0,1], non-negative impact days and daily cost.
func (d *Disruption) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("disruption id is empty")
	}
	if !d.Type.Valid() {
		return fmt.Errorf("unknown disruption type %q", d.Type)
	}
	if !d.Severity.Valid() {
		return fmt.Errorf("unknown severity level %q", d.Severity)
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", d.Confidence)
	}
	if d.EstimatedImpactDays < 0 {
		return fmt.Errorf("estimated_impact_days %d is negative", d.EstimatedImpactDays)
	}
	if d.EstimatedCostPerDay < 0 {
		return fmt.Errorf("estimated_cost_per_day %v is negative", d.EstimatedCostPerDay)
	}
	return nil
}

// TotalEstimatedCost projects the full cost of the disruption.
func (d *Disruption) TotalEstimatedCost() float64 {
	return float64(d.EstimatedImpactDays) * d.EstimatedCostPerDay
}
