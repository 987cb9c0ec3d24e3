// Package eventinfo classifies inbound cloud control-plane events and
// extracts the resource identifiers they reference into a uniform shape
// that the rest of the orchestrator consumes.
package eventinfo

import "time"

// Source tags the detected shape of an inbound event.
type Source string

const (
	SourceCloudTrail  Source = "cloudtrail"
	SourceGuardDuty   Source = "guardduty"
	SourceSecurityHub Source = "securityhub"
	SourceConfig      Source = "config"
	SourceUnknown     Source = "unknown"
)

// UserIdentity is the subset of CloudTrail's userIdentity block we care
// about. Fields are populated best-effort; all may be empty.
type UserIdentity struct {
	Type        string `json:"type,omitempty"`
	PrincipalID string `json:"principalId,omitempty"`
	ARN         string `json:"arn,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	UserName    string `json:"userName,omitempty"`
}

// Principal returns the best available human-readable identifier for the
// caller: userName, falling back to principalId, then the ARN.
func (u UserIdentity) Principal() string {
	switch {
	case u.UserName != "":
		return u.UserName
	case u.PrincipalID != "":
		return u.PrincipalID
	case u.ARN != "":
		return u.ARN
	default:
		return "unknown"
	}
}

// ResourceSet is a deduplicated, insertion-ordered collection of string
// identifiers. Order matters: the filter builder picks "the first
// matching" entry, so callers must preserve discovery order.
type ResourceSet struct {
	values []string
	seen   map[string]struct{}
}

// Add appends v if it has not already been recorded.
func (r *ResourceSet) Add(v string) {
	if v == "" {
		return
	}
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[v]; ok {
		return
	}
	r.seen[v] = struct{}{}
	r.values = append(r.values, v)
}

// Values returns the deduplicated values in discovery order.
func (r *ResourceSet) Values() []string {
	return r.values
}

// Len reports the number of distinct values recorded.
func (r *ResourceSet) Len() int { return len(r.values) }

// GenericResources is the bucket the generic extractor (and the
// per-source extractors) populate: arns/ids/names classified purely by
// key name and value shape, independent of resource type.
type GenericResources struct {
	ARNs  ResourceSet
	IDs   ResourceSet
	Names ResourceSet
}

// EventInfo is the canonical, source-agnostic representation every
// downstream component operates on.
type EventInfo struct {
	EventName       string
	Source          Source
	EventTime       time.Time
	Region          string
	SourceAccountID string
	UserIdentity    UserIdentity

	// RawEvent is the original decoded payload, preserved verbatim for
	// template rendering in the notification pipeline. It must never be
	// mutated after Classify returns.
	RawEvent map[string]any

	Generic GenericResources

	// Typed identifiers populated by per-source extraction rules, where
	// the source payload makes them unambiguous.
	BucketName      string
	InstanceID      string
	GroupID         string
	Username        string
	LoadBalancerARN string
	ListenerARN     string

	FindingType     string
	FindingSeverity float64
	FindingID       string
}
