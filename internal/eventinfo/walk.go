package eventinfo

import "regexp"

// maxWalkDepth bounds the recursive descent into request/response
// payloads so an adversarial, deeply-nested event cannot exhaust the
// stack or the invocation's time budget.
const maxWalkDepth = 10

var (
	arnKeyPattern  = regexp.MustCompile(`(?i)arn`)
	arnValueRegex  = regexp.MustCompile(`^arn:`)
	idKeyPattern   = regexp.MustCompile(`(?i)^(.*_)?(id|identifier|resourceid|instanceid|volumeid|snapshotid|imageid|groupid|vpcid|subnetid|clusterid|dbinstanceidentifier|filesystemid|streamname|topicarn|queueurl|functionname)$`)
	nameKeyPattern = regexp.MustCompile(`(?i)^(.*_)?(name|bucketname|username|rolename|policyname|tablename|clustername|loadbalancername)$`)
)

// walkGeneric performs the bounded-depth recursive scan of a payload:
// every string value is classified by its owning key name (ARN/ID/name
// heuristics) or, failing that, by its own shape (an "arn:"-prefixed
// value is always an ARN regardless of key).
func walkGeneric(v any, key string, depth int, out *GenericResources) {
	if depth > maxWalkDepth {
		return
	}

	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			walkGeneric(child, k, depth+1, out)
		}
	case []any:
		for _, child := range val {
			walkGeneric(child, key, depth+1, out)
		}
	case string:
		classifyString(key, val, out)
	default:
		// numbers, bools, nil: never classified as identifiers.
	}
}

func classifyString(key, val string, out *GenericResources) {
	if val == "" {
		return
	}
	switch {
	case arnValueRegex.MatchString(val) || arnKeyPattern.MatchString(key):
		// An "arn:"-shaped value or an ARN-ish key ("CertificateArn")
		// both land here; the filter builder's per-type compatibility
		// check weeds out anything that doesn't parse as a real ARN.
		out.ARNs.Add(val)
	case idKeyPattern.MatchString(key):
		out.IDs.Add(val)
	case nameKeyPattern.MatchString(key):
		out.Names.Add(val)
	}
}

// walkInto scans a request/response-shaped payload (already a
// map[string]any, typically detail.requestParameters or
// detail.responseElements) and merges discoveries into out.
func walkInto(payload any, out *GenericResources) {
	if payload == nil {
		return
	}
	walkGeneric(payload, "", 0, out)
}
