package eventinfo

import (
	"fmt"
	"regexp"
)

// listenerARNPattern matches an ALB/NLB listener ARN so its embedded
// load-balancer ARN can be reconstructed when ModifyListener and similar
// calls omit the load balancer ARN itself.
var listenerARNPattern = regexp.MustCompile(`^arn:([^:]+):elasticloadbalancing:([^:]+):([^:]+):listener/(app|net)/([^/]+)/([^/]+)/([^/]+)$`)

func extractCloudTrail(detail map[string]any, info *EventInfo) {
	info.EventName = getString(detail, "eventName")
	if region := getString(detail, "awsRegion"); region != "" {
		info.Region = region
	}
	info.UserIdentity = parseUserIdentity(detail)

	reqParams := getMap(detail, "requestParameters")
	respElems := getMap(detail, "responseElements")

	walkInto(reqParams, &info.Generic)
	walkInto(respElems, &info.Generic)

	// Bucket name: S3 API calls carry it in the request; some also echo
	// it back in the response.
	if b := getString(reqParams, "bucketName"); b != "" {
		info.BucketName = b
	} else if b := getString(respElems, "bucketName"); b != "" {
		info.BucketName = b
	}

	// Instance IDs: EC2 RunInstances/TerminateInstances/etc shape.
	if id := firstInstanceID(reqParams); id != "" {
		info.InstanceID = id
	} else if id := firstInstanceID(respElems); id != "" {
		info.InstanceID = id
	}

	// Security group id, when present directly.
	if gid := getString(reqParams, "groupId"); gid != "" {
		info.GroupID = gid
	}

	// IAM/user-facing username, when present directly.
	if u := getString(reqParams, "userName"); u != "" {
		info.Username = u
	}

	extractLoadBalancer(reqParams, info)
	extractLoadBalancer(respElems, info)
}

// firstInstanceID walks the classic EC2 "instancesSet.items[*].instanceId"
// shape used by RunInstances/TerminateInstances/StopInstances/etc.
func firstInstanceID(m map[string]any) string {
	set := getMap(m, "instancesSet")
	items := getSlice(set, "items")
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if id := getString(item, "instanceId"); id != "" {
			return id
		}
	}
	return ""
}

// extractLoadBalancer fills in LoadBalancerARN/ListenerARN. When a
// listener ARN is present but the load balancer ARN is absent — common
// for ModifyListener — the load balancer ARN is reconstructed from the
// listener ARN's structure:
//
//	arn:<p>:elasticloadbalancing:<r>:<a>:listener/app/<name>/<lb-id>/<listener-id>
//	  -> arn:<p>:elasticloadbalancing:<r>:<a>:loadbalancer/app/<name>/<lb-id>
func extractLoadBalancer(m map[string]any, info *EventInfo) {
	if lb := getString(m, "loadBalancerArn"); lb != "" {
		info.LoadBalancerARN = lb
	}
	if ln := getString(m, "listenerArn"); ln != "" {
		info.ListenerARN = ln
		if info.LoadBalancerARN == "" {
			if reconstructed := loadBalancerARNFromListener(ln); reconstructed != "" {
				info.LoadBalancerARN = reconstructed
			}
		}
	}
}

func loadBalancerARNFromListener(listenerARN string) string {
	g := listenerARNPattern.FindStringSubmatch(listenerARN)
	if g == nil {
		return ""
	}
	partition, region, account, kind, name, lbID := g[1], g[2], g[3], g[4], g[5], g[6]
	return fmt.Sprintf("arn:%s:elasticloadbalancing:%s:%s:loadbalancer/%s/%s/%s",
		partition, region, account, kind, name, lbID)
}
