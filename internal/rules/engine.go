package rules

import "chainwatch/pkg/models"

// Engine applies watch rules to disruptions.
type Engine interface {
	Apply(d *models.Disruption) []models.WatchTag
}

// NoopEngine returns no tags.
type NoopEngine struct{}

// Apply returns an empty tag list.
func (n *NoopEngine) Apply(d *models.Disruption) []models.WatchTag {
	return nil
}
