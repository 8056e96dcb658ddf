package sinks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSSinkDeliverSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::results",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Deliver(context.Background(), binaryResult()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if client.input == nil {
		t.Fatalf("nothing published")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::results" {
		t.Fatalf("topic arn = %q", got)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(aws.ToString(client.input.Message)), &summary); err != nil {
		t.Fatalf("message is not a summary: %v", err)
	}
	if summary.TargetURL != "http://example.com/hook" {
		t.Fatalf("summary target url = %q", summary.TargetURL)
	}
}

func TestSNSSinkDeliverError(t *testing.T) {
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::results",
		client:   &fakeSNSClient{err: errors.New("denied")},
		log:      noopLogger{},
	}

	if err := sink.Deliver(context.Background(), binaryResult()); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestSNSSinkRequiresConfig(t *testing.T) {
	if _, err := newSNSSink(context.Background(), SinkConfig{ID: "t", Type: TypeSNS}, nil); err == nil {
		t.Fatalf("expected error for missing sns configuration")
	}
}
