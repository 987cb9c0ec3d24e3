package notify

import "testing"

func TestRenderBody_ResolvesFindingsIndex(t *testing.T) {
	ctx := map[string]any{
		"event": map[string]any{
			"detail": map[string]any{
				"findings": []any{
					map[string]any{"Severity": map[string]any{"Label": "CRITICAL"}},
				},
			},
		},
	}
	got := renderBody("severity={{ event.detail.findings[0].Severity.Label }}", ctx)
	want := "severity=CRITICAL"
	if got != want {
		t.Fatalf("renderBody = %q, want %q", got, want)
	}
}

func TestRenderBody_MissingFieldFallsBackToLiteral(t *testing.T) {
	ctx := map[string]any{"event": map[string]any{}}
	got := renderBody("severity={{ event.detail.findings[0].Severity.Label }}", ctx)
	want := "severity=" + missingFieldFallback
	if got != want {
		t.Fatalf("renderBody = %q, want %q", got, want)
	}
}

func TestRenderSubject_SingleBraceSubstitution(t *testing.T) {
	ctx := map[string]any{"policy_name": "ec2-stop-unencrypted", "account_id": "222233334444"}
	got := renderSubject("{policy_name} matched on {account_id}", ctx)
	want := "ec2-stop-unencrypted matched on 222233334444"
	if got != want {
		t.Fatalf("renderSubject = %q, want %q", got, want)
	}
}
