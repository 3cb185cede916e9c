package pipeline

import (
	"context"

	"chainwatch/pkg/models"
)

// AlertWriter writes alert outputs.
type AlertWriter interface {
	WriteAlerts(alerts []*models.Alert) error
	Close() error
}

// Consumer pops raw disruption payloads from a queue.
type Consumer interface {
	Pop(ctx context.Context) ([]byte, error)
	Close() error
}
