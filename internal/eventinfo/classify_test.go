package eventinfo

import "testing"

func TestClassify_MissingDetailType(t *testing.T) {
	_, err := Classify(map[string]any{"account": "111"})
	if !IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestClassify_CloudTrailEC2Launch(t *testing.T) {
	raw := map[string]any{
		"source":      "aws.ec2",
		"detail-type": "AWS API Call via CloudTrail",
		"account":     "123456789012",
		"region":      "us-east-1",
		"time":        "2026-01-01T00:00:00Z",
		"detail": map[string]any{
			"eventName":   "RunInstances",
			"eventSource": "ec2.amazonaws.com",
			"awsRegion":   "us-east-1",
			"userIdentity": map[string]any{
				"type":      "IAMUser",
				"userName":  "alice",
				"accountId": "123456789012",
			},
			"responseElements": map[string]any{
				"instancesSet": map[string]any{
					"items": []any{
						map[string]any{"instanceId": "i-0123456789abcdef0"},
					},
				},
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.Source != SourceCloudTrail {
		t.Fatalf("source = %q, want cloudtrail", info.Source)
	}
	if info.EventName != "RunInstances" {
		t.Fatalf("event name = %q", info.EventName)
	}
	if info.InstanceID != "i-0123456789abcdef0" {
		t.Fatalf("instance id = %q", info.InstanceID)
	}
	if info.UserIdentity.Principal() != "alice" {
		t.Fatalf("principal = %q", info.UserIdentity.Principal())
	}
	if got := info.Generic.IDs.Values(); len(got) != 1 || got[0] != "i-0123456789abcdef0" {
		t.Fatalf("generic ids = %v", got)
	}
}

func TestClassify_ALBListenerReconstructsLoadBalancerARN(t *testing.T) {
	raw := map[string]any{
		"detail-type": "AWS API Call via CloudTrail",
		"account":     "111111111111",
		"detail": map[string]any{
			"eventName":   "ModifyListener",
			"eventSource": "elasticloadbalancing.amazonaws.com",
			"requestParameters": map[string]any{
				"listenerArn": "arn:aws:elasticloadbalancing:us-east-1:111:listener/app/web/abcd/1234",
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := "arn:aws:elasticloadbalancing:us-east-1:111:loadbalancer/app/web/abcd"
	if info.LoadBalancerARN != want {
		t.Fatalf("load balancer arn = %q, want %q", info.LoadBalancerARN, want)
	}
}

func TestClassify_GuardDutyEC2Finding(t *testing.T) {
	raw := map[string]any{
		"source": "aws.guardduty",
		"detail": map[string]any{
			"type":     "CryptoCurrency:EC2/BitcoinTool.B!DNS",
			"severity": 8,
			"id":       "finding-1",
			"resource": map[string]any{
				"instanceDetails": map[string]any{
					"instanceId": "i-9",
				},
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.Source != SourceGuardDuty {
		t.Fatalf("source = %q", info.Source)
	}
	if info.InstanceID != "i-9" {
		t.Fatalf("instance id = %q", info.InstanceID)
	}
	if got := info.Generic.IDs.Values(); len(got) != 1 || got[0] != "i-9" {
		t.Fatalf("generic ids = %v", got)
	}
}

func TestClassify_SecurityHubFindingsBatch(t *testing.T) {
	raw := map[string]any{
		"detail-type": "Security Hub Findings - Imported",
		"detail": map[string]any{
			"findings": []any{
				map[string]any{
					"Id":    "finding-a",
					"Types": []any{"Software and Configuration Checks"},
					"Resources": []any{
						map[string]any{"Id": "arn:aws:s3:::my-bucket"},
					},
				},
				map[string]any{
					"Id": "finding-b",
					"Resources": []any{
						map[string]any{"Id": "i-abc123"},
					},
				},
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.Source != SourceSecurityHub {
		t.Fatalf("source = %q", info.Source)
	}
	if got := info.Generic.ARNs.Values(); len(got) != 1 || got[0] != "arn:aws:s3:::my-bucket" {
		t.Fatalf("generic arns = %v", got)
	}
	if got := info.Generic.IDs.Values(); len(got) != 1 || got[0] != "i-abc123" {
		t.Fatalf("generic ids = %v", got)
	}
}

func TestClassify_ConfigChange(t *testing.T) {
	raw := map[string]any{
		"source":  "aws.config",
		"account": "222233334444",
		"detail": map[string]any{
			"resourceType": "AWS::EC2::SecurityGroup",
			"resourceId":   "sg-0123",
			"configurationItem": map[string]any{
				"ARN": "arn:aws:ec2:us-east-1:222233334444:security-group/sg-0123",
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.Source != SourceConfig {
		t.Fatalf("source = %q", info.Source)
	}
	if got := info.Generic.IDs.Values(); len(got) != 1 || got[0] != "sg-0123" {
		t.Fatalf("generic ids = %v", got)
	}
	if got := info.Generic.ARNs.Values(); len(got) != 1 {
		t.Fatalf("generic arns = %v", got)
	}
}

func TestClassify_AccountFallsBackToIdentityHint(t *testing.T) {
	raw := map[string]any{
		"detail-type": "AWS API Call via CloudTrail",
		"detail": map[string]any{
			"eventName":   "CreateBucket",
			"eventSource": "s3.amazonaws.com",
			"userIdentity": map[string]any{
				"accountId": "222233334444",
			},
			"requestParameters": map[string]any{
				"bucketName": "my-bucket",
			},
		},
	}

	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.SourceAccountID != "222233334444" {
		t.Fatalf("source account = %q, want the identity hint", info.SourceAccountID)
	}
	if info.BucketName != "my-bucket" {
		t.Fatalf("bucket = %q", info.BucketName)
	}
}

func TestClassify_UnknownShapeIsNotAnError(t *testing.T) {
	raw := map[string]any{
		"detail-type": "Something We've Never Seen",
		"detail":      map[string]any{"whatever": "value"},
	}
	info, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if info.Source != SourceUnknown {
		t.Fatalf("source = %q, want unknown", info.Source)
	}
	if info.Generic.ARNs.Len() != 0 || info.Generic.IDs.Len() != 0 {
		t.Fatalf("unknown events should have empty generic resources, got %+v", info.Generic)
	}
}

func TestClassify_EmptyDetailForRecognizedSourceIsMalformed(t *testing.T) {
	raw := map[string]any{
		"detail-type": "AWS API Call via CloudTrail",
		"detail":      map[string]any{},
	}
	_, err := Classify(raw)
	if !IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestWalkGeneric_DepthBound(t *testing.T) {
	// Build a payload nested deeper than maxWalkDepth with an id at the
	// bottom; it must not be picked up.
	var deep any = map[string]any{"instanceId": "i-too-deep"}
	for i := 0; i < maxWalkDepth+5; i++ {
		deep = map[string]any{"wrapper": deep}
	}
	var out GenericResources
	walkInto(deep, &out)
	if out.IDs.Len() != 0 {
		t.Fatalf("expected depth bound to prevent extraction, got %v", out.IDs.Values())
	}
}
