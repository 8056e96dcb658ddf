package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/probelabs/hookprobe/internal/domain"
)

// pubsubSink publishes the result summary to a GCP Pub/Sub topic.
type pubsubSink struct {
	id     string
	typ    string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    Logger
}

func newPubSubSink(ctx context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("sink %q missing pubsub configuration", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.Endpoint != "" {
		// emulator or private endpoint
		opts = append(opts, option.WithEndpoint(cfg.PubSub.Endpoint), option.WithoutAuthentication())
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubSink{
		id:     cfg.ID,
		typ:    TypePubSub,
		client: client,
		topic:  client.Topic(cfg.PubSub.Topic),
		log:    ensureLogger(log),
	}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return p.typ }

// Deliver publishes the result summary and waits for server acknowledgement.
func (p *pubsubSink) Deliver(ctx context.Context, res *domain.WebhookResult) error {
	payload, err := json.Marshal(NewSummary(res))
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"status_code": strconv.Itoa(res.StatusCode),
			"body_kind":   res.Kind.String(),
		},
	})
	if _, err := result.Get(ctx); err != nil {
		p.log.ErrorObj("pubsub sink publish failed", "sink_pubsub_error", map[string]any{
			"sink_id": p.id,
			"error":   err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub sink delivered summary", "sink_pubsub_delivery", map[string]any{
		"sink_id": p.id,
	})
	return nil
}

// Close stops the topic and releases the underlying client connection.
func (p *pubsubSink) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
