package monitor

import (
	"math"

	"chainwatch/pkg/models"
)

// Urgency labels, highest tier first.
const (
	UrgencyCritical = "CRITICAL - Immediate Action Required"
	UrgencyHigh     = "HIGH - Action Required Within 4 Hours"
	UrgencyMedium   = "MEDIUM - Action Required Within 24 Hours"
	UrgencyLow      = "LOW - Monitoring Required"
)

// RiskScore computes the 0-100 composite risk score for a disruption.
// Severity carries up to 90 points; impact duration, daily cost, and
// confidence each add up to 10 points, so secondary factors can break
// ties without overruling severity.
func RiskScore(d models.Disruption) float64 {
	base := d.Severity.BaseScore()

	impactFactor := math.Min(float64(d.EstimatedImpactDays)/10.0, 1.0) * 10
	costFactor := math.Min(d.EstimatedCostPerDay/1_000_000, 1.0) * 10
	confidenceAdjustment := d.Confidence * 10

	return math.Min(base+impactFactor+costFactor+confidenceAdjustment, 100)
}

// Urgency classifies a risk score into a response-time tier. Boundaries
// at 40, 60, and 80 belong to the higher tier.
func Urgency(score float64) string {
	switch {
	case score >= 80:
		return UrgencyCritical
	case score >= 60:
		return UrgencyHigh
	case score >= 40:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// UrgencyTier returns just the tier word of an urgency label.
func UrgencyTier(score float64) string {
	switch {
	case score >= 80:
		return "CRITICAL"
	case score >= 60:
		return "HIGH"
	case score >= 40:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
