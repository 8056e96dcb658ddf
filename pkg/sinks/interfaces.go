package sinks

import (
	"context"

	"github.com/probelabs/hookprobe/internal/domain"
)

// Sink receives the resolved webhook result (terminal panel, file save,
// HTTP forward, queue, etc).
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, res *domain.WebhookResult) error
}
