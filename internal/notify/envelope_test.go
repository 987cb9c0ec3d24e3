package notify

import "testing"

func TestEncodeDecode_RoundTrip(t *testing.T) {
	env := Envelope{
		PolicyName:    "ec2-stop-unencrypted",
		ActionTmpl:    "{{ event.detail.eventName }} fired",
		ActionSubject: "{policy} matched on {account_id}",
		ViolationDesc: "unencrypted volume",
		Account:       "222233334444",
		Region:        "us-east-1",
		Resources:     []map[string]any{{"InstanceId": "i-0123"}},
		Event:         map[string]any{"detail": map[string]any{"eventName": "RunInstances"}},
	}

	encoded, err := Encode(env)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.PolicyName != env.PolicyName || decoded.Account != env.Account {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if len(decoded.Resources) != 1 || decoded.Resources[0]["InstanceId"] != "i-0123" {
		t.Fatalf("resources mismatch: %+v", decoded.Resources)
	}
}

func TestDecode_RejectsGarbageBody(t *testing.T) {
	if _, err := Decode("not-base64!!!"); err == nil {
		t.Fatal("expected error decoding garbage body")
	}
}
