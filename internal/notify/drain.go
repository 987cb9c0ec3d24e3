package notify

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// maxDeliveryAttempts bounds publish retries: a message is dropped,
// with a structured log entry, after this many failed attempts rather
// than being routed to an in-process dead-letter queue. SQS's own
// redrive policy is the operator-configured backstop.
const maxDeliveryAttempts = 3

// DrainResult counts the messages a drain pass handled and published.
type DrainResult struct {
	Processed int
	Published int
}

// Drain consumes every message on the queue carrying the current
// invocation's correlation id, renders it, and publishes it on channel.
// Messages belonging to a concurrent invocation are left in place.
func Drain(ctx context.Context, client SQSAPI, queueURL, invocationID, accountName, environment string, channel OutboundChannel) (DrainResult, error) {
	var result DrainResult

	for {
		out, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:                    &queueURL,
			MaxNumberOfMessages:         10,
			WaitTimeSeconds:             0,
			MessageAttributeNames:       []string{invocationIDAttribute},
			MessageSystemAttributeNames: []sqstypes.MessageSystemAttributeName{sqstypes.MessageSystemAttributeNameApproximateReceiveCount},
		})
		if err != nil {
			return result, err
		}
		if len(out.Messages) == 0 {
			return result, nil
		}

		for _, msg := range out.Messages {
			if !belongsToInvocation(msg, invocationID) {
				continue // belongs to a concurrent invocation; leave in place.
			}
			result.Processed++
			drainOne(ctx, client, queueURL, msg, accountName, environment, channel, &result)
		}
	}
}

func belongsToInvocation(msg sqstypes.Message, invocationID string) bool {
	attr, ok := msg.MessageAttributes[invocationIDAttribute]
	return ok && attr.StringValue != nil && *attr.StringValue == invocationID
}

func drainOne(ctx context.Context, client SQSAPI, queueURL string, msg sqstypes.Message, accountName, environment string, channel OutboundChannel, result *DrainResult) {
	body := ""
	if msg.Body != nil {
		body = *msg.Body
	}

	env, err := Decode(body)
	if err != nil {
		slog.Error("failed to decode notification envelope, dropping", "error", err)
		deleteMessage(ctx, client, queueURL, msg.ReceiptHandle)
		return
	}

	renderCtx := buildRenderContext(env, accountName, environment)
	rendered := Rendered{
		PolicyName: env.PolicyName,
		Account:    env.Account,
		Region:     env.Region,
		Subject:    renderSubject(env.ActionSubject, renderCtx),
		Body:       renderBody(env.ActionTmpl, renderCtx),
	}

	if err := channel.Send(ctx, rendered); err != nil {
		if receiveCount(msg) >= maxDeliveryAttempts {
			slog.Error("notification dropped after repeated publish failures",
				"policy", env.PolicyName, "receive_count", receiveCount(msg), "error", err)
			deleteMessage(ctx, client, queueURL, msg.ReceiptHandle)
		}
		// Below the attempt limit: leave the message in place; it
		// becomes visible again after the queue's visibility timeout
		// and is retried on the next drain.
		return
	}

	result.Published++
	deleteMessage(ctx, client, queueURL, msg.ReceiptHandle)
}

func buildRenderContext(env Envelope, accountName, environment string) map[string]any {
	return map[string]any{
		"account":     accountName,
		"account_id":  env.Account,
		"region":      env.Region,
		"policy":      env.PolicyName,
		"policy_name": env.PolicyName,
		"environment": environment,
		"event":       env.Event,
	}
}

func receiveCount(msg sqstypes.Message) int {
	raw, ok := msg.Attributes[string(sqstypes.MessageSystemAttributeNameApproximateReceiveCount)]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func deleteMessage(ctx context.Context, client SQSAPI, queueURL string, receiptHandle *string) {
	if receiptHandle == nil {
		return
	}
	if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{QueueUrl: &queueURL, ReceiptHandle: receiptHandle}); err != nil {
		slog.Warn("failed to delete drained notification message", "error", err)
	}
}
