package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeSQS struct {
	batches   [][]sqstypes.Message
	deleted   []string
	sendErr   error
	sendCalls int
	lastSend  *sqs.SendMessageInput
}

func (f *fakeSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.sendCalls++
	f.lastSend = in
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &sqs.SendMessageOutput{}, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if len(f.batches) == 0 {
		return &sqs.ReceiveMessageOutput{}, nil
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return &sqs.ReceiveMessageOutput{Messages: next}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, *in.ReceiptHandle)
	return &sqs.DeleteMessageOutput{}, nil
}

type recordingChannel struct {
	sent []Rendered
	err  error
}

func (c *recordingChannel) Send(_ context.Context, r Rendered) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, r)
	return nil
}

func envelopeMessage(t *testing.T, invocationID string, env Envelope, receiveCount string) sqstypes.Message {
	t.Helper()
	body, err := Encode(env)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return sqstypes.Message{
		Body:          &body,
		ReceiptHandle: aws.String("receipt-" + env.PolicyName),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			invocationIDAttribute: {DataType: aws.String("String"), StringValue: aws.String(invocationID)},
		},
		Attributes: map[string]string{
			string(sqstypes.MessageSystemAttributeNameApproximateReceiveCount): receiveCount,
		},
	}
}

func TestDrain_PublishesMatchingInvocationAndDeletes(t *testing.T) {
	env := Envelope{PolicyName: "p1", Account: "111111111111", ActionSubject: "{policy_name}"}
	msg := envelopeMessage(t, "inv-1", env, "1")
	client := &fakeSQS{batches: [][]sqstypes.Message{{msg}}}
	channel := &recordingChannel{}

	result, err := Drain(context.Background(), client, "queue-url", "inv-1", "tenant-name", "prod", channel)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 1 || result.Published != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(channel.sent) != 1 || channel.sent[0].Subject != "p1" {
		t.Fatalf("channel.sent = %+v", channel.sent)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("expected message to be deleted after publish, deleted = %v", client.deleted)
	}
}

func TestDrain_LeavesNonMatchingInvocationInPlace(t *testing.T) {
	env := Envelope{PolicyName: "p1"}
	msg := envelopeMessage(t, "other-invocation", env, "1")
	client := &fakeSQS{batches: [][]sqstypes.Message{{msg}}}
	channel := &recordingChannel{}

	result, err := Drain(context.Background(), client, "queue-url", "inv-1", "tenant-name", "prod", channel)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 0 || result.Published != 0 {
		t.Fatalf("expected non-matching message to be skipped entirely, got %+v", result)
	}
	if len(client.deleted) != 0 {
		t.Fatalf("non-matching message must not be deleted")
	}
}

func TestDrain_DropsAfterMaxAttempts(t *testing.T) {
	env := Envelope{PolicyName: "p1"}
	msg := envelopeMessage(t, "inv-1", env, "3")
	client := &fakeSQS{batches: [][]sqstypes.Message{{msg}}}
	channel := &recordingChannel{err: errors.New("publish down")}

	result, err := Drain(context.Background(), client, "queue-url", "inv-1", "tenant-name", "prod", channel)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Published != 0 {
		t.Fatalf("expected no successful publish, got %+v", result)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("expected message dropped (deleted) after hitting max attempts, deleted = %v", client.deleted)
	}
}

func TestDrain_BelowMaxAttemptsLeavesMessageForRetry(t *testing.T) {
	env := Envelope{PolicyName: "p1"}
	msg := envelopeMessage(t, "inv-1", env, "1")
	client := &fakeSQS{batches: [][]sqstypes.Message{{msg}}}
	channel := &recordingChannel{err: errors.New("publish down")}

	result, err := Drain(context.Background(), client, "queue-url", "inv-1", "tenant-name", "prod", channel)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Published != 0 {
		t.Fatalf("expected no successful publish, got %+v", result)
	}
	if len(client.deleted) != 0 {
		t.Fatalf("expected message to remain in queue for retry, deleted = %v", client.deleted)
	}
}
