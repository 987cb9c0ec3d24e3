package invocation

import "testing"

func TestEventKey_StableAcrossMapKeyOrder(t *testing.T) {
	a := map[string]any{"account": "111", "detail": map[string]any{"eventName": "RunInstances", "x": 1.0}}
	b := map[string]any{"detail": map[string]any{"x": 1.0, "eventName": "RunInstances"}, "account": "111"}

	if EventKey(a) != EventKey(b) {
		t.Errorf("EventKey should be invariant to map key order, got %q vs %q", EventKey(a), EventKey(b))
	}
}

func TestEventKey_DiffersOnPayloadChange(t *testing.T) {
	a := map[string]any{"account": "111", "eventName": "RunInstances"}
	b := map[string]any{"account": "111", "eventName": "TerminateInstances"}

	if EventKey(a) == EventKey(b) {
		t.Error("EventKey should differ for distinct payloads")
	}
}
