package monitor

import (
	"testing"

	"chainwatch/pkg/models"
)

var allSeverities = []models.SeverityLevel{
	models.SeverityLow,
	models.SeverityMedium,
	models.SeverityHigh,
	models.SeverityCritical,
}

func TestRiskScoreMonotonicInSecondaryFactors(t *testing.T) {
	for _, sev := range allSeverities {
		prev := -1.0
		for days := 0; days <= 20; days += 2 {
			score := RiskScore(models.Disruption{Severity: sev, EstimatedImpactDays: days})
			if score < prev {
				t.Fatalf("%s: score decreased with impact days: %v -> %v", sev, prev, score)
			}
			prev = score
		}

		prev = -1.0
		for cost := 0.0; cost <= 2_000_000; cost += 200_000 {
			score := RiskScore(models.Disruption{Severity: sev, EstimatedCostPerDay: cost})
			if score < prev {
				t.Fatalf("%s: score decreased with daily cost: %v -> %v", sev, prev, score)
			}
			prev = score
		}

		prev = -1.0
		for conf := 0.0; conf <= 1.0; conf += 0.1 {
			score := RiskScore(models.Disruption{Severity: sev, Confidence: conf})
			if score < prev {
				t.Fatalf("%s: score decreased with confidence: %v -> %v", sev, prev, score)
			}
			prev = score
		}
	}
}

func TestRiskScoreBounds(t *testing.T) {
	for _, sev := range allSeverities {
		floor := RiskScore(models.Disruption{Severity: sev})
		if floor != sev.BaseScore() {
			t.Fatalf("%s: expected bare score to equal base %v, got %v", sev, sev.BaseScore(), floor)
		}

		ceiling := RiskScore(models.Disruption{
			Severity:            sev,
			EstimatedImpactDays: 1000,
			EstimatedCostPerDay: 1e9,
			Confidence:          1.0,
		})
		if ceiling > 100 {
			t.Fatalf("%s: score exceeded 100: %v", sev, ceiling)
		}
		if ceiling < sev.BaseScore() {
			t.Fatalf("%s: score fell below base: %v", sev, ceiling)
		}
	}
}

func TestRiskScoreFactorSaturation(t *testing.T) {
	at10 := RiskScore(models.Disruption{Severity: models.SeverityLow, EstimatedImpactDays: 10})
	at30 := RiskScore(models.Disruption{Severity: models.SeverityLow, EstimatedImpactDays: 30})
	if at10 != at30 {
		t.Fatalf("impact factor must saturate at 10 days: %v != %v", at10, at30)
	}
	if at10 != 30 {
		t.Fatalf("expected 20 base + 10 saturated impact, got %v", at10)
	}

	atMillion := RiskScore(models.Disruption{Severity: models.SeverityLow, EstimatedCostPerDay: 1_000_000})
	atBillion := RiskScore(models.Disruption{Severity: models.SeverityLow, EstimatedCostPerDay: 1_000_000_000})
	if atMillion != atBillion {
		t.Fatalf("cost factor must saturate at 1M/day: %v != %v", atMillion, atBillion)
	}
}

func TestUrgencyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, UrgencyLow},
		{39.99, UrgencyLow},
		{40, UrgencyMedium},
		{59.99, UrgencyMedium},
		{60, UrgencyHigh},
		{79.99, UrgencyHigh},
		{80, UrgencyCritical},
		{100, UrgencyCritical},
	}
	for _, tc := range cases {
		if got := Urgency(tc.score); got != tc.want {
			t.Fatalf("Urgency(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestUrgencyTierMatchesLabel(t *testing.T) {
	for _, score := range []float64{0, 40, 60, 80} {
		tier := UrgencyTier(score)
		label := Urgency(score)
		if len(label) < len(tier) || label[:len(tier)] != tier {
			t.Fatalf("tier %q does not prefix label %q", tier, label)
		}
	}
}
