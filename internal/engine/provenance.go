package engine

import "github.com/opsguild/c7n-hub/internal/eventinfo"

// enrichProvenance stamps every descriptor with the event's principal.
// It must run before the filter chain and before any action fires,
// since actions may serialize descriptors into notifications. For EC2
// instance descriptors it also
// appends the same value to the descriptor's own tag list, since
// instance tags are what downstream notification templates and the
// console actually render.
func enrichProvenance(resourceType string, event *eventinfo.EventInfo, resources []map[string]any) {
	principal := event.UserIdentity.Principal()
	for _, r := range resources {
		if r == nil {
			continue
		}
		r["c7n:CreatorName"] = principal
		if resourceType == "aws.ec2" {
			appendInstanceTag(r, "c7n:CreatorName", principal)
		}
	}
}

func appendInstanceTag(descriptor map[string]any, key, value string) {
	tags, _ := descriptor["Tags"].([]any)
	tags = append(tags, map[string]any{"Key": key, "Value": value})
	descriptor["Tags"] = tags
}
