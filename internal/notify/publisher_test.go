package notify

import (
	"context"
	"testing"

	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/invocation"
)

func TestPublish_AttachesInvocationIDAndRoundTrips(t *testing.T) {
	client := &fakeSQS{}
	p := &Publisher{Client: client, QueueURL: "queue-url"}

	event := &eventinfo.EventInfo{
		RawEvent: map[string]any{"detail": map[string]any{"eventName": "RunInstances"}},
	}
	invctx := invocation.Context{CorrelationID: "inv-42"}
	action := map[string]any{
		"type":           "notify",
		"subject":        "{policy_name} fired",
		"template":       "default",
		"violation_desc": "unencrypted volume",
	}
	resources := []map[string]any{{"InstanceId": "i-0123"}}

	err := p.Publish(context.Background(), invctx, "222233334444", "us-east-1", event, "ec2-stop-unencrypted", action, resources)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.sendCalls != 1 {
		t.Fatalf("sendCalls = %d, want 1", client.sendCalls)
	}

	in := client.lastSend
	attr, ok := in.MessageAttributes[invocationIDAttribute]
	if !ok || attr.StringValue == nil || *attr.StringValue != "inv-42" {
		t.Fatalf("InvocationId attribute = %+v, want inv-42", attr)
	}

	env, err := Decode(*in.MessageBody)
	if err != nil {
		t.Fatalf("Decode published body: %v", err)
	}
	if env.PolicyName != "ec2-stop-unencrypted" || env.Account != "222233334444" || env.Region != "us-east-1" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.ActionSubject != "{policy_name} fired" || env.ViolationDesc != "unencrypted volume" {
		t.Fatalf("envelope action fields = %+v", env)
	}
	if len(env.Resources) != 1 || env.Resources[0]["InstanceId"] != "i-0123" {
		t.Fatalf("envelope resources = %+v", env.Resources)
	}
}
