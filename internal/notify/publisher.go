package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/invocation"
)

// SQSAPI is the subset of *sqs.Client this package calls, narrowed so
// tests can substitute a fake.
type SQSAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, opts ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, opts ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, opts ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// invocationIDAttribute is the message attribute the drain pass matches
// against the current invocation's correlation id.
const invocationIDAttribute = "InvocationId"

// Publisher writes notify-action output onto the internal queue. It
// implements internal/engine.NotifyPublisher structurally.
type Publisher struct {
	Client   SQSAPI
	QueueURL string
}

// Publish builds the envelope and enqueues it. InvocationId rides as a
// message attribute on the same SendMessage call, so no message ever
// reaches the queue without its correlation id.
func (p *Publisher) Publish(
	ctx context.Context,
	invctx invocation.Context,
	tenantID, region string,
	event *eventinfo.EventInfo,
	policyName string,
	action map[string]any,
	resources []map[string]any,
) error {
	subject, _ := action["subject"].(string)
	tmpl, _ := action["template"].(string)
	violation, _ := action["violation_desc"].(string)

	env := Envelope{
		PolicyName:    policyName,
		ActionTmpl:    tmpl,
		ActionSubject: subject,
		ViolationDesc: violation,
		Account:       tenantID,
		Region:        region,
		Resources:     resources,
		Event:         event.RawEvent,
	}

	body, err := Encode(env)
	if err != nil {
		return fmt.Errorf("encode notify envelope: %w", err)
	}

	_, err = p.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &body,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			invocationIDAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(invctx.CorrelationID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send notify message: %w", err)
	}
	return nil
}
