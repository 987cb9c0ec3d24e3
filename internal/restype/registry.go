// Package restype holds the per-resource-type tables that drive the
// filter & prefetch builder: which descriptor attribute matches by ARN,
// by id, or by name, and which AWS ARN service component is compatible
// with the type, for ~90 policy resource types.
package restype

// Spec is the per-resource-type configuration the filter builder and
// ARN-compatibility check consult.
type Spec struct {
	// ARNField is the descriptor attribute the policy engine matches a
	// resource by ARN, e.g. "Arn", "LoadBalancerArn".
	ARNField string
	// IDField is the descriptor attribute matched by opaque/numeric id.
	IDField string
	// NameField is the descriptor attribute matched by human name.
	NameField string
	// IDPrefix constrains which generic id belongs to this type, e.g.
	// EC2 instance ids always start with "i-". Empty means unconstrained.
	IDPrefix string
	// Service is the ARN service component this type's resources carry,
	// e.g. "ec2", "elasticloadbalancing", "s3". Used by ArnMatchesType.
	Service string
}

// registry is keyed by the c7n-style "aws.<type>" resource type name.
//
// aws.s3's NameField is "Name" — used consistently both by the
// name-only prefetch stub and by the filter emitted when only a bucket
// name is known.
var registry = map[string]Spec{
	"aws.ec2":                          {ARNField: "Arn", IDField: "InstanceId", NameField: "Name", IDPrefix: "i-", Service: "ec2"},
	"aws.ebs":                          {ARNField: "Arn", IDField: "VolumeId", NameField: "Name", IDPrefix: "vol-", Service: "ec2"},
	"aws.ebs-snapshot":                 {ARNField: "Arn", IDField: "SnapshotId", NameField: "Name", IDPrefix: "snap-", Service: "ec2"},
	"aws.ami":                          {ARNField: "Arn", IDField: "ImageId", NameField: "Name", IDPrefix: "ami-", Service: "ec2"},
	"aws.asg":                          {ARNField: "AutoScalingGroupARN", IDField: "AutoScalingGroupName", NameField: "AutoScalingGroupName", Service: "autoscaling"},
	"aws.launch-config":                {ARNField: "LaunchConfigurationARN", IDField: "LaunchConfigurationName", NameField: "LaunchConfigurationName", Service: "autoscaling"},
	"aws.launch-template":              {ARNField: "LaunchTemplateId", IDField: "LaunchTemplateId", NameField: "LaunchTemplateName", IDPrefix: "lt-", Service: "ec2"},
	"aws.key-pair":                     {ARNField: "KeyPairId", IDField: "KeyPairId", NameField: "KeyName", Service: "ec2"},
	"aws.elb":                          {ARNField: "Arn", IDField: "DNSName", NameField: "LoadBalancerName", Service: "elasticloadbalancing"},
	"aws.app-elb":                      {ARNField: "LoadBalancerArn", IDField: "LoadBalancerArn", NameField: "LoadBalancerName", Service: "elasticloadbalancing"},
	"aws.app-elb-listener":             {ARNField: "ListenerArn", IDField: "ListenerArn", NameField: "ListenerArn", Service: "elasticloadbalancing"},
	"aws.app-elb-target-group":         {ARNField: "TargetGroupArn", IDField: "TargetGroupArn", NameField: "TargetGroupName", Service: "elasticloadbalancing"},
	"aws.s3":                           {ARNField: "Arn", IDField: "Name", NameField: "Name", Service: "s3"},
	"aws.rds":                          {ARNField: "DBInstanceArn", IDField: "DBInstanceIdentifier", NameField: "DBInstanceIdentifier", Service: "rds"},
	"aws.rds-cluster":                  {ARNField: "DBClusterArn", IDField: "DBClusterIdentifier", NameField: "DBClusterIdentifier", Service: "rds"},
	"aws.rds-snapshot":                 {ARNField: "DBSnapshotArn", IDField: "DBSnapshotIdentifier", NameField: "DBSnapshotIdentifier", Service: "rds"},
	"aws.rds-subnet-group":             {ARNField: "DBSubnetGroupArn", IDField: "DBSubnetGroupName", NameField: "DBSubnetGroupName", Service: "rds"},
	"aws.cache-cluster":                {ARNField: "ARN", IDField: "CacheClusterId", NameField: "CacheClusterId", Service: "elasticache"},
	"aws.cache-subnet-group":           {ARNField: "ARN", IDField: "CacheSubnetGroupName", NameField: "CacheSubnetGroupName", Service: "elasticache"},
	"aws.redshift":                     {ARNField: "ClusterNamespaceArn", IDField: "ClusterIdentifier", NameField: "ClusterIdentifier", Service: "redshift"},
	"aws.redshift-snapshot":            {ARNField: "SnapshotArn", IDField: "SnapshotIdentifier", NameField: "SnapshotIdentifier", Service: "redshift"},
	"aws.lambda":                       {ARNField: "FunctionArn", IDField: "FunctionName", NameField: "FunctionName", Service: "lambda"},
	"aws.lambda-layer":                 {ARNField: "LayerArn", IDField: "LayerName", NameField: "LayerName", Service: "lambda"},
	"aws.iam-role":                     {ARNField: "Arn", IDField: "RoleId", NameField: "RoleName", Service: "iam"},
	"aws.iam-user":                     {ARNField: "Arn", IDField: "UserId", NameField: "UserName", Service: "iam"},
	"aws.iam-group":                    {ARNField: "Arn", IDField: "GroupId", NameField: "GroupName", Service: "iam"},
	"aws.iam-policy":                   {ARNField: "Arn", IDField: "PolicyId", NameField: "PolicyName", Service: "iam"},
	"aws.iam-instance-profile":         {ARNField: "Arn", IDField: "InstanceProfileId", NameField: "InstanceProfileName", Service: "iam"},
	"aws.vpc":                          {ARNField: "VpcId", IDField: "VpcId", NameField: "Name", IDPrefix: "vpc-", Service: "ec2"},
	"aws.subnet":                       {ARNField: "SubnetId", IDField: "SubnetId", NameField: "Name", IDPrefix: "subnet-", Service: "ec2"},
	"aws.security-group":               {ARNField: "GroupId", IDField: "GroupId", NameField: "GroupName", IDPrefix: "sg-", Service: "ec2"},
	"aws.network-addr":                 {ARNField: "AllocationId", IDField: "AllocationId", NameField: "PublicIp", IDPrefix: "eipalloc-", Service: "ec2"},
	"aws.eni":                          {ARNField: "NetworkInterfaceId", IDField: "NetworkInterfaceId", NameField: "NetworkInterfaceId", IDPrefix: "eni-", Service: "ec2"},
	"aws.nat-gateway":                  {ARNField: "NatGatewayId", IDField: "NatGatewayId", NameField: "NatGatewayId", IDPrefix: "nat-", Service: "ec2"},
	"aws.internet-gateway":             {ARNField: "InternetGatewayId", IDField: "InternetGatewayId", NameField: "InternetGatewayId", IDPrefix: "igw-", Service: "ec2"},
	"aws.route-table":                  {ARNField: "RouteTableId", IDField: "RouteTableId", NameField: "RouteTableId", IDPrefix: "rtb-", Service: "ec2"},
	"aws.network-acl":                  {ARNField: "NetworkAclId", IDField: "NetworkAclId", NameField: "NetworkAclId", IDPrefix: "acl-", Service: "ec2"},
	"aws.peering-connection":           {ARNField: "VpcPeeringConnectionId", IDField: "VpcPeeringConnectionId", NameField: "VpcPeeringConnectionId", IDPrefix: "pcx-", Service: "ec2"},
	"aws.transit-gateway":              {ARNField: "TransitGatewayArn", IDField: "TransitGatewayId", NameField: "TransitGatewayId", IDPrefix: "tgw-", Service: "ec2"},
	"aws.vpn-connection":               {ARNField: "VpnConnectionId", IDField: "VpnConnectionId", NameField: "VpnConnectionId", IDPrefix: "vpn-", Service: "ec2"},
	"aws.dynamodb-table":               {ARNField: "TableArn", IDField: "TableId", NameField: "TableName", Service: "dynamodb"},
	"aws.dynamodb-backup":              {ARNField: "BackupArn", IDField: "BackupArn", NameField: "BackupName", Service: "dynamodb"},
	"aws.sqs":                          {ARNField: "QueueArn", IDField: "QueueUrl", NameField: "QueueArn", Service: "sqs"},
	"aws.sns":                          {ARNField: "TopicArn", IDField: "TopicArn", NameField: "TopicArn", Service: "sns"},
	"aws.kms-key":                      {ARNField: "Arn", IDField: "KeyId", NameField: "KeyId", Service: "kms"},
	"aws.secrets-manager":              {ARNField: "ARN", IDField: "Name", NameField: "Name", Service: "secretsmanager"},
	"aws.cloudfront":                   {ARNField: "ARN", IDField: "Id", NameField: "DomainName", Service: "cloudfront"},
	"aws.efs":                          {ARNField: "FileSystemArn", IDField: "FileSystemId", NameField: "Name", IDPrefix: "fs-", Service: "elasticfilesystem"},
	"aws.efs-mount-target":             {ARNField: "MountTargetId", IDField: "MountTargetId", NameField: "MountTargetId", IDPrefix: "fsmt-", Service: "elasticfilesystem"},
	"aws.kinesis":                      {ARNField: "StreamARN", IDField: "StreamName", NameField: "StreamName", Service: "kinesis"},
	"aws.firehose":                     {ARNField: "DeliveryStreamARN", IDField: "DeliveryStreamName", NameField: "DeliveryStreamName", Service: "firehose"},
	"aws.elasticsearch":                {ARNField: "ARN", IDField: "DomainId", NameField: "DomainName", Service: "es"},
	"aws.eks":                          {ARNField: "Arn", IDField: "Name", NameField: "Name", Service: "eks"},
	"aws.ecs-cluster":                  {ARNField: "ClusterArn", IDField: "ClusterName", NameField: "ClusterName", Service: "ecs"},
	"aws.ecs-service":                  {ARNField: "ServiceArn", IDField: "ServiceName", NameField: "ServiceName", Service: "ecs"},
	"aws.ecs-task":                     {ARNField: "TaskArn", IDField: "TaskArn", NameField: "TaskArn", Service: "ecs"},
	"aws.ecr":                          {ARNField: "repositoryArn", IDField: "repositoryName", NameField: "repositoryName", Service: "ecr"},
	"aws.acm-certificate":              {ARNField: "CertificateArn", IDField: "CertificateArn", NameField: "DomainName", Service: "acm"},
	"aws.cloudtrail":                   {ARNField: "TrailARN", IDField: "Name", NameField: "Name", Service: "cloudtrail"},
	"aws.waf":                          {ARNField: "WebACLArn", IDField: "WebACLId", NameField: "Name", Service: "waf"},
	"aws.waf-regional":                 {ARNField: "WebACLArn", IDField: "WebACLId", NameField: "Name", Service: "waf-regional"},
	"aws.wafv2":                        {ARNField: "ARN", IDField: "Id", NameField: "Name", Service: "wafv2"},
	"aws.rest-api":                     {ARNField: "id", IDField: "id", NameField: "name", Service: "apigateway"},
	"aws.glue-connection":              {ARNField: "ConnectionArn", IDField: "Name", NameField: "Name", Service: "glue"},
	"aws.glue-job":                     {ARNField: "JobArn", IDField: "Name", NameField: "Name", Service: "glue"},
	"aws.sagemaker-notebook":           {ARNField: "NotebookInstanceArn", IDField: "NotebookInstanceName", NameField: "NotebookInstanceName", Service: "sagemaker"},
	"aws.sagemaker-endpoint":           {ARNField: "EndpointArn", IDField: "EndpointName", NameField: "EndpointName", Service: "sagemaker"},
	"aws.sagemaker-model":              {ARNField: "ModelArn", IDField: "ModelName", NameField: "ModelName", Service: "sagemaker"},
	"aws.backup-plan":                  {ARNField: "BackupPlanArn", IDField: "BackupPlanId", NameField: "BackupPlanName", Service: "backup"},
	"aws.backup-vault":                 {ARNField: "BackupVaultArn", IDField: "BackupVaultName", NameField: "BackupVaultName", Service: "backup"},
	"aws.codebuild":                    {ARNField: "arn", IDField: "name", NameField: "name", Service: "codebuild"},
	"aws.codepipeline":                 {ARNField: "pipelineArn", IDField: "name", NameField: "name", Service: "codepipeline"},
	"aws.codecommit":                   {ARNField: "Arn", IDField: "repositoryId", NameField: "repositoryName", Service: "codecommit"},
	"aws.cloudformation":               {ARNField: "StackId", IDField: "StackId", NameField: "StackName", Service: "cloudformation"},
	"aws.elasticbeanstalk-environment": {ARNField: "EnvironmentArn", IDField: "EnvironmentId", NameField: "EnvironmentName", Service: "elasticbeanstalk"},
	"aws.emr":                          {ARNField: "ClusterArn", IDField: "Id", NameField: "Name", Service: "elasticmapreduce"},
	"aws.msk":                          {ARNField: "ClusterArn", IDField: "ClusterArn", NameField: "ClusterName", Service: "kafka"},
	"aws.directory":                    {ARNField: "DirectoryId", IDField: "DirectoryId", NameField: "Name", IDPrefix: "d-", Service: "ds"},
	"aws.workspaces":                   {ARNField: "WorkspaceId", IDField: "WorkspaceId", NameField: "ComputerName", IDPrefix: "ws-", Service: "workspaces"},
	"aws.glacier":                      {ARNField: "VaultARN", IDField: "VaultName", NameField: "VaultName", Service: "glacier"},
	"aws.cloudwatch-alarm":             {ARNField: "AlarmArn", IDField: "AlarmName", NameField: "AlarmName", Service: "cloudwatch"},
	"aws.log-group":                    {ARNField: "arn", IDField: "logGroupName", NameField: "logGroupName", Service: "logs"},
	"aws.ssm-parameter":                {ARNField: "ARN", IDField: "Name", NameField: "Name", Service: "ssm"},
	"aws.ssm-managed-instance":         {ARNField: "InstanceId", IDField: "InstanceId", NameField: "Name", IDPrefix: "mi-", Service: "ssm"},
	"aws.dlm-policy":                   {ARNField: "PolicyArn", IDField: "PolicyId", NameField: "Description", IDPrefix: "policy-", Service: "dlm"},
	"aws.dax":                          {ARNField: "ClusterArn", IDField: "ClusterName", NameField: "ClusterName", Service: "dax"},
	"aws.step-machine":                 {ARNField: "stateMachineArn", IDField: "stateMachineArn", NameField: "name", Service: "states"},
	"aws.batch-compute":                {ARNField: "computeEnvironmentArn", IDField: "computeEnvironmentName", NameField: "computeEnvironmentName", Service: "batch"},
	"aws.batch-definition":             {ARNField: "jobDefinitionArn", IDField: "jobDefinitionName", NameField: "jobDefinitionName", Service: "batch"},
	"aws.dms-instance":                 {ARNField: "ReplicationInstanceArn", IDField: "ReplicationInstanceIdentifier", NameField: "ReplicationInstanceIdentifier", Service: "dms"},
	"aws.route53-zone":                 {ARNField: "Id", IDField: "Id", NameField: "Name", Service: "route53"},
	"aws.route53-healthcheck":          {ARNField: "Id", IDField: "Id", NameField: "Id", Service: "route53"},
	"aws.lightsail-instance":           {ARNField: "arn", IDField: "name", NameField: "name", Service: "lightsail"},
	"aws.mq-broker":                    {ARNField: "BrokerArn", IDField: "BrokerId", NameField: "BrokerName", Service: "mq"},
	"aws.qldb":                         {ARNField: "Arn", IDField: "Name", NameField: "Name", Service: "qldb"},
}

// Lookup returns the Spec for resourceType and whether it was found.
func Lookup(resourceType string) (Spec, bool) {
	s, ok := registry[resourceType]
	return s, ok
}
