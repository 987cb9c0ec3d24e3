package restype

import (
	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

// ArnMatchesType reports whether the given ARN's service component is
// consistent with resourceType's registered service, rejecting
// mismatches such as an S3 bucket ARN offered against an aws.ec2
// policy.
//
// Unparseable ARNs and unregistered resource types never match.
func ArnMatchesType(arnStr, resourceType string) bool {
	spec, ok := Lookup(resourceType)
	if !ok || spec.Service == "" {
		return false
	}
	parsed, err := awsarn.Parse(arnStr)
	if err != nil {
		return false
	}
	return parsed.Service == spec.Service
}
