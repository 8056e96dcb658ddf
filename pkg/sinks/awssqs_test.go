package sinks

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkDeliverSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "queue",
		typ:      TypeSQS,
		queueURL: "https://sqs.test/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Deliver(context.Background(), binaryResult()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if client.input == nil {
		t.Fatalf("no message sent")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.test/queue" {
		t.Fatalf("queue url = %q", got)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &summary); err != nil {
		t.Fatalf("message body is not a summary: %v", err)
	}
	if summary.StatusCode != 200 || summary.BodyKind != "binary" {
		t.Fatalf("summary fields off: %+v", summary)
	}

	attr, ok := client.input.MessageAttributes["status_code"]
	if !ok || aws.ToString(attr.StringValue) != "200" {
		t.Fatalf("status_code attribute missing or wrong: %+v", client.input.MessageAttributes)
	}
}

func TestSQSSinkDeliverError(t *testing.T) {
	sink := &sqsSink{
		id:       "queue",
		typ:      TypeSQS,
		queueURL: "https://sqs.test/queue",
		client:   &fakeSQSClient{err: errors.New("throttled")},
		log:      noopLogger{},
	}

	err := sink.Deliver(context.Background(), binaryResult())
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}

func TestSQSSinkRequiresConfig(t *testing.T) {
	if _, err := newSQSSink(context.Background(), SinkConfig{ID: "q", Type: TypeSQS}, nil); err == nil {
		t.Fatalf("expected error for missing sqs configuration")
	}
}
