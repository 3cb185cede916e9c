package monitor

import "chainwatch/pkg/models"

// recommendationRule pairs a predicate with the actions it contributes.
// Rules are additive and evaluated in declaration order, which encodes
// descending operational priority.
type recommendationRule struct {
	name    string
	applies func(d models.Disruption, score float64) bool
	actions []string
}

var recommendationRules = []recommendationRule{
	{
		name: "high-risk-escalation",
		applies: func(d models.Disruption, score float64) bool {
			return score >= 70
		},
		actions: []string{
			"URGENT: Activate emergency response team",
			"Notify executive leadership immediately",
		},
	},
	{
		name: "severe-supply-protection",
		applies: func(d models.Disruption, score float64) bool {
			return d.Severity == models.SeverityHigh || d.Severity == models.SeverityCritical
		},
		actions: []string{
			"Identify alternative suppliers immediately",
			"Increase safety stock for affected items",
		},
	},
	{
		name: "weather-routing",
		applies: func(d models.Disruption, score float64) bool {
			return d.Type == models.TypeWeather
		},
		actions: []string{
			"Monitor weather patterns for route planning",
			"Consider alternative transportation routes",
		},
	},
	{
		name: "supplier-contracts",
		applies: func(d models.Disruption, score float64) bool {
			return d.Type == models.TypeSupplier
		},
		actions: []string{
			"Review supplier contracts and SLAs",
			"Contact backup suppliers",
		},
	},
	{
		name: "high-daily-cost",
		applies: func(d models.Disruption, score float64) bool {
			return d.EstimatedCostPerDay > 100_000
		},
		actions: []string{
			"Prepare financial impact report",
			"Update stakeholder communications",
		},
	},
}

var defaultRecommendations = []string{
	"Continue monitoring situation",
	"Document disruption for future analysis",
}

// Recommendations returns the ordered action list for a disruption.
// Multiple rules may fire; when none do, the default pair is returned,
// so the result is never empty.
func Recommendations(d models.Disruption, score float64) []string {
	var out []string
	for _, rule := range recommendationRules {
		if rule.applies(d, score) {
			out = append(out, rule.actions...)
		}
	}
	if len(out) == 0 {
		out = append(out, defaultRecommendations...)
	}
	return out
}
