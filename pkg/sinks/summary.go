package sinks

import (
	"time"

	"github.com/probelabs/hookprobe/internal/domain"
)

// Summary is the JSON payload forwarded by non-terminal sinks. It carries the
// observed response metadata, never the raw binary body.
type Summary struct {
	TargetURL         string            `json:"target_url"`
	StatusCode        int               `json:"status_code"`
	ContentType       string            `json:"content_type"`
	BodyKind          string            `json:"body_kind"`
	SizeBytes         int64             `json:"size_bytes"`
	SuggestedFileName string            `json:"suggested_file_name,omitempty"`
	Headers           map[string]string `json:"headers"`
	CompletedAt       time.Time         `json:"completed_at"`
}

// NewSummary constructs a Summary for the given result.
func NewSummary(res *domain.WebhookResult) Summary {
	return Summary{
		TargetURL:         res.RequestURL,
		StatusCode:        res.StatusCode,
		ContentType:       res.ContentType,
		BodyKind:          res.Kind.String(),
		SizeBytes:         res.Size,
		SuggestedFileName: res.SuggestedFileName,
		Headers:           res.Headers,
		CompletedAt:       time.Now().UTC(),
	}
}
