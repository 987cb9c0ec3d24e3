// Package orchestrator wires the full pipeline into one invocation:
// classify the event, resolve policies, acquire the tenant session,
// build filters, execute each policy, then drain the notifications it
// queued — and renders the response body the host expects back.
package orchestrator

// Result is the handler's response body.
type Result struct {
	Success                   bool           `json:"success"`
	AccountID                 string         `json:"account_id"`
	Region                    string         `json:"region"`
	EventName                 string         `json:"event_name"`
	PoliciesExecuted          int            `json:"policies_executed"`
	PoliciesSuccessful        int            `json:"policies_successful"`
	PoliciesFailed            int            `json:"policies_failed"`
	RealtimeNotificationsSent int            `json:"realtime_notifications_sent"`
	SQSMessagesProcessed      int            `json:"sqs_messages_processed"`
	Error                     string         `json:"error,omitempty"`
	Results                   []PolicyResult `json:"results"`
}

// PolicyResult is one entry of Result.Results.
type PolicyResult struct {
	PolicyName       string `json:"policy_name"`
	SourceFile       string `json:"source_file"`
	ResourceType     string `json:"resource_type"`
	Status           string `json:"status"` // success | failed | deadline_exceeded
	ResourcesMatched int    `json:"resources_matched,omitempty"`
	ActionTaken      bool   `json:"action_taken,omitempty"`
	Error            string `json:"error,omitempty"`
}

const (
	statusSuccess          = "success"
	statusFailed           = "failed"
	statusDeadlineExceeded = "deadline_exceeded"
)
