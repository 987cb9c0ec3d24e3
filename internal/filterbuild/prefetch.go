package filterbuild

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/opsguild/c7n-hub/internal/awsclients"
	"github.com/opsguild/c7n-hub/internal/eventinfo"
)

// prefetcher resolves an event directly into descriptors for one
// resource type, bypassing the filter chain. It must return (nil, nil),
// not an error, when the event simply doesn't carry enough to attempt
// the lookup.
type prefetcher func(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error)

// prefetchers covers the resource types exercised by the pipeline's
// known event shapes. Types absent from this table fall back to the
// filter path built by typedFilter — prefetching is a best-effort
// optimization, not a requirement for correctness.
var prefetchers = map[string]prefetcher{
	"aws.ec2":                  prefetchEC2Instance,
	"aws.ebs":                  prefetchEBSVolume,
	"aws.ebs-snapshot":         prefetchEBSSnapshot,
	"aws.ami":                  prefetchAMI,
	"aws.vpc":                  prefetchVPC,
	"aws.subnet":               prefetchSubnet,
	"aws.security-group":       prefetchSecurityGroup,
	"aws.app-elb":              prefetchAppELB,
	"aws.app-elb-target-group": prefetchTargetGroup,
	"aws.s3":                   prefetchS3Bucket,
	"aws.lambda":               prefetchLambdaFunction,
	"aws.rds":                  prefetchRDSInstance,
	"aws.rds-cluster":          prefetchRDSCluster,
	"aws.cache-cluster":        prefetchCacheClusterFromResponse,
	"aws.iam-role":             prefetchIAMRole,
	"aws.iam-user":             prefetchIAMUser,
}

// toMap flattens an SDK output struct into a generic descriptor via its
// JSON shape, which mirrors the attribute names c7n-style filters match
// against (CamelCase field names, same as the AWS APIs).
func toMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func tagMatched(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	m["c7n:MatchedFilters"] = []string{matchedFiltersTag}
	return m
}

func prefetchEC2Instance(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	if event.InstanceID == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{event.InstanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("describe instances %s: %w", event.InstanceID, err)
	}
	var descriptors []map[string]any
	for _, res := range out.Reservations {
		for _, inst := range res.Instances {
			descriptors = append(descriptors, tagMatched(toMap(inst)))
		}
	}
	return descriptors, nil
}

func prefetchEBSVolume(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstWithPrefix(event.Generic.IDs, "vol-")
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe volume %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, v := range out.Volumes {
		descriptors = append(descriptors, tagMatched(toMap(v)))
	}
	return descriptors, nil
}

func prefetchEBSSnapshot(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstWithPrefix(event.Generic.IDs, "snap-")
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{SnapshotIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe snapshot %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, s := range out.Snapshots {
		descriptors = append(descriptors, tagMatched(toMap(s)))
	}
	return descriptors, nil
}

func prefetchAMI(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstWithPrefix(event.Generic.IDs, "ami-")
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeImages(ctx, &ec2.DescribeImagesInput{ImageIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe image %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, img := range out.Images {
		descriptors = append(descriptors, tagMatched(toMap(img)))
	}
	return descriptors, nil
}

func prefetchVPC(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstWithPrefix(event.Generic.IDs, "vpc-")
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe vpc %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, v := range out.Vpcs {
		descriptors = append(descriptors, tagMatched(toMap(v)))
	}
	return descriptors, nil
}

func prefetchSubnet(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstWithPrefix(event.Generic.IDs, "subnet-")
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{SubnetIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe subnet %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, s := range out.Subnets {
		descriptors = append(descriptors, tagMatched(toMap(s)))
	}
	return descriptors, nil
}

func prefetchSecurityGroup(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := event.GroupID
	if id == "" {
		id = firstWithPrefix(event.Generic.IDs, "sg-")
	}
	if id == "" {
		return nil, nil
	}
	out, err := clients.EC2().DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{GroupIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("describe security group %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, sg := range out.SecurityGroups {
		descriptors = append(descriptors, tagMatched(toMap(sg)))
	}
	return descriptors, nil
}

func prefetchAppELB(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	arn := event.LoadBalancerARN
	if arn == "" {
		return nil, nil
	}
	out, err := clients.ELBV2().DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		LoadBalancerArns: []string{arn},
	})
	if err != nil {
		return nil, fmt.Errorf("describe load balancer %s: %w", arn, err)
	}
	var descriptors []map[string]any
	for _, lb := range out.LoadBalancers {
		descriptors = append(descriptors, tagMatched(toMap(lb)))
	}
	return descriptors, nil
}

func prefetchTargetGroup(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	var arn string
	for _, a := range event.Generic.ARNs.Values() {
		if strings.Contains(a, ":targetgroup/") {
			arn = a
			break
		}
	}
	if arn == "" {
		return nil, nil
	}
	out, err := clients.ELBV2().DescribeTargetGroups(ctx, &elasticloadbalancingv2.DescribeTargetGroupsInput{
		TargetGroupArns: []string{arn},
	})
	if err != nil {
		return nil, fmt.Errorf("describe target group %s: %w", arn, err)
	}
	var descriptors []map[string]any
	for _, tg := range out.TargetGroups {
		descriptors = append(descriptors, tagMatched(toMap(tg)))
	}
	return descriptors, nil
}

// prefetchS3Bucket is the name-only stub pattern: S3 has
// no single-bucket describe API, so the prefetched descriptor carries
// only the bucket name (plus the c7n:MatchedFilters marker), matching what the policy engine's S3 resource
// manager accepts as a seed before it fills in the rest via ListBuckets
// filtering. No API call is made here.
func prefetchS3Bucket(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	if event.BucketName == "" {
		return nil, nil
	}
	return []map[string]any{tagMatched(map[string]any{"Name": event.BucketName})}, nil
}

func prefetchLambdaFunction(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	name := firstMatching(event.Generic.Names, event.Generic.IDs)
	if name == "" {
		return nil, nil
	}
	out, err := clients.Lambda().GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: &name})
	if err != nil {
		return nil, fmt.Errorf("get function %s: %w", name, err)
	}
	if out.Configuration == nil {
		return nil, nil
	}
	return []map[string]any{tagMatched(toMap(out.Configuration))}, nil
}

func prefetchRDSInstance(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstMatching(event.Generic.IDs)
	if id == "" {
		return nil, nil
	}
	out, err := clients.RDS().DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{DBInstanceIdentifier: &id})
	if err != nil {
		return nil, fmt.Errorf("describe db instance %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, db := range out.DBInstances {
		descriptors = append(descriptors, tagMatched(toMap(db)))
	}
	return descriptors, nil
}

func prefetchRDSCluster(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	id := firstMatching(event.Generic.IDs)
	if id == "" {
		return nil, nil
	}
	out, err := clients.RDS().DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{DBClusterIdentifier: &id})
	if err != nil {
		return nil, fmt.Errorf("describe db cluster %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, c := range out.DBClusters {
		descriptors = append(descriptors, tagMatched(toMap(c)))
	}
	return descriptors, nil
}

func prefetchIAMUser(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	name := event.Username
	if name == "" {
		name = firstMatching(event.Generic.Names)
	}
	if name == "" {
		return nil, nil
	}
	out, err := clients.IAM().GetUser(ctx, &iam.GetUserInput{UserName: &name})
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", name, err)
	}
	if out.User == nil {
		return nil, nil
	}
	return []map[string]any{tagMatched(toMap(out.User))}, nil
}

func prefetchIAMRole(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	name := firstMatching(event.Generic.Names)
	if name == "" {
		return nil, nil
	}
	out, err := clients.IAM().GetRole(ctx, &iam.GetRoleInput{RoleName: &name})
	if err != nil {
		return nil, fmt.Errorf("get role %s: %w", name, err)
	}
	if out.Role == nil {
		return nil, nil
	}
	return []map[string]any{tagMatched(toMap(out.Role))}, nil
}

// prefetchCacheClusterFromResponse is the synthesis pattern:
// CreateCacheCluster's CloudTrail responseElements already
// describes the full resource, so rather than round-tripping through
// DescribeCacheClusters (which may 404 immediately after creation while
// the cluster is still provisioning) the descriptor is synthesized
// directly from the response by converting its camelCase keys to the
// PascalCase attribute names the policy engine's ElastiCache resource
// manager expects.
func prefetchCacheClusterFromResponse(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo) ([]map[string]any, error) {
	detail, _ := event.RawEvent["detail"].(map[string]any)
	resp, _ := detail["responseElements"].(map[string]any)
	if len(resp) > 0 {
		synthesized := make(map[string]any, len(resp))
		for k, v := range resp {
			synthesized[pascalCase(k)] = v
		}
		// A create response omits fields DescribeCacheClusters would carry;
		// fill the ones authored filters commonly key on with the values
		// the SDK serializes for a cluster still provisioning.
		if _, ok := synthesized["CacheClusterStatus"]; !ok {
			synthesized["CacheClusterStatus"] = "creating"
		}
		return []map[string]any{tagMatched(synthesized)}, nil
	}

	// Non-create events (e.g. ModifyCacheCluster) carry no responseElements
	// describing the full resource; fall back to a direct describe call.
	id := firstMatching(event.Generic.IDs)
	if id == "" {
		return nil, nil
	}
	out, err := clients.ElastiCache().DescribeCacheClusters(ctx, &elasticache.DescribeCacheClustersInput{
		CacheClusterId: &id,
	})
	if err != nil {
		return nil, fmt.Errorf("describe cache cluster %s: %w", id, err)
	}
	var descriptors []map[string]any
	for _, cc := range out.CacheClusters {
		descriptors = append(descriptors, tagMatched(toMap(cc)))
	}
	return descriptors, nil
}

func pascalCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func firstMatching(sets ...eventinfo.ResourceSet) string {
	for _, s := range sets {
		if s.Len() > 0 {
			return s.Values()[0]
		}
	}
	return ""
}

// firstWithPrefix picks the first id carrying the type's prefix, so an
// event mentioning both an instance and its volume doesn't cross-assign.
func firstWithPrefix(set eventinfo.ResourceSet, prefix string) string {
	for _, v := range set.Values() {
		if strings.HasPrefix(v, prefix) {
			return v
		}
	}
	return ""
}
