// Package creds implements the cross-account credential broker:
// deterministic role assumption into a tenant account, with a hub-account
// bypass and post-assumption identity verification.
package creds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// SessionDuration is the fixed, non-extending assume-role duration.
// Tenant sessions never outlive a single invocation's budget.
const SessionDuration = 900 * time.Second

// DefaultRoleName is used when Broker.RoleName is unset.
const DefaultRoleName = "CloudCustodianExecutionRole"

// DefaultExternalIDPrefix is used when Broker.ExternalIDPrefix is unset.
const DefaultExternalIDPrefix = "cloud-custodian"

// STSAPI is the subset of the STS client the broker needs. Both
// AssumeRole and GetCallerIdentity are called against different
// aws.Configs (ambient, then assumed), so the broker takes a factory
// rather than a single client.
type STSAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSFactory builds an STS client bound to the given aws.Config.
type STSFactory func(aws.Config) STSAPI

// AssumedSession is the credential bundle handed to one invocation.
// Owned exclusively by that invocation; never shared or persisted.
type AssumedSession struct {
	Config     aws.Config
	Expiration time.Time
	TenantID   string
	RoleARN    string // empty when the hub bypass was used
}

// Broker assumes short-lived credentials into tenant accounts.
type Broker struct {
	// HubAccountID is this invocation's own account identity; tenant_id
	// equal to it triggers the ambient-credentials bypass.
	HubAccountID string

	// AmbientConfig is the hub's own aws.Config, used directly on bypass
	// and as the caller identity for AssumeRole into tenants.
	AmbientConfig aws.Config

	// RoleName is the target role name in each tenant account. Defaults
	// to DefaultRoleName.
	RoleName string

	// ExternalIDPrefix is prefixed to the tenant id to build the
	// deterministic external id. Defaults to DefaultExternalIDPrefix.
	ExternalIDPrefix string

	// NewSTS builds an STS client for a given config. Defaults to
	// sts.NewFromConfig; overridable for tests.
	NewSTS STSFactory
}

func (b *Broker) roleName() string {
	if b.RoleName != "" {
		return b.RoleName
	}
	return DefaultRoleName
}

func (b *Broker) externalIDPrefix() string {
	if b.ExternalIDPrefix != "" {
		return b.ExternalIDPrefix
	}
	return DefaultExternalIDPrefix
}

func (b *Broker) stsFactory() STSFactory {
	if b.NewSTS != nil {
		return b.NewSTS
	}
	return func(cfg aws.Config) STSAPI { return sts.NewFromConfig(cfg) }
}

// RoleARN returns the deterministic role ARN for a tenant: arn:<partition>:iam::<tenant_id>:role/<role_name>.
func (b *Broker) RoleARN(tenantID string) string {
	return fmt.Sprintf("arn:%s:iam::%s:role/%s", partitionForRegion(b.AmbientConfig.Region), tenantID, b.roleName())
}

// ExternalID returns the deterministic external id: <prefix>-<tenant_id>.
func (b *Broker) ExternalID(tenantID string) string {
	return b.externalIDPrefix() + "-" + tenantID
}

// Acquire assumes a session in tenantID, bypassing assume-role entirely
// when tenantID is the hub's own account.
func (b *Broker) Acquire(ctx context.Context, tenantID, region string) (*AssumedSession, error) {
	if tenantID == "" {
		return nil, &AcquireError{Kind: KindAccessDenied, Reason: "tenant_id is empty"}
	}

	if tenantID == b.HubAccountID {
		cfg := b.AmbientConfig.Copy()
		if region != "" {
			cfg.Region = region
		}
		return &AssumedSession{
			Config:     cfg,
			Expiration: time.Now().Add(SessionDuration),
			TenantID:   tenantID,
		}, nil
	}

	roleARN := b.RoleARN(tenantID)
	externalID := b.ExternalID(tenantID)
	durationSeconds := int32(SessionDuration.Seconds())
	sessionName := "c7n-hub-" + tenantID

	stsClient := b.stsFactory()(b.AmbientConfig)
	out, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         &roleARN,
		RoleSessionName: &sessionName,
		ExternalId:      &externalID,
		DurationSeconds: &durationSeconds,
	})
	if err != nil {
		return nil, &AcquireError{
			Kind:   KindAccessDenied,
			Reason: fmt.Sprintf("assume role %s (external id %s) in tenant %s: %v — verify the role's trust policy allows this hub account with the expected ExternalId condition", roleARN, externalID, tenantID, err),
		}
	}

	assumedCfg := b.AmbientConfig.Copy()
	if region != "" {
		assumedCfg.Region = region
	}
	assumedCfg.Credentials = awscreds.NewStaticCredentialsProvider(
		*out.Credentials.AccessKeyId,
		*out.Credentials.SecretAccessKey,
		*out.Credentials.SessionToken,
	)

	session := &AssumedSession{
		Config:     assumedCfg,
		Expiration: *out.Credentials.Expiration,
		TenantID:   tenantID,
		RoleARN:    roleARN,
	}

	verifyIdentity(ctx, b.stsFactory()(assumedCfg), tenantID, roleARN)

	return session, nil
}

// verifyIdentity calls GetCallerIdentity on the freshly assumed session
// and asserts the returned account matches tenantID. A mismatch is
// logged as a warning, not an error: the credentials are still honored,
// but misconfiguration (e.g. a stale or reused role name across
// accounts) becomes observable in logs.
func verifyIdentity(ctx context.Context, client STSAPI, tenantID, roleARN string) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		slog.Warn("credential broker: identity verification call failed", "tenant_id", tenantID, "role_arn", roleARN, "err", err)
		return
	}
	if out.Account == nil || *out.Account != tenantID {
		got := "unknown"
		if out.Account != nil {
			got = *out.Account
		}
		slog.Warn("credential broker: assumed identity does not match tenant",
			"tenant_id", tenantID, "role_arn", roleARN, "got_account", got)
	}
}

// partitionForRegion returns the AWS partition for a region, defaulting
// to the commercial partition, so GovCloud/China regions don't silently
// build an unusable role ARN.
func partitionForRegion(region string) string {
	switch {
	case strings.HasPrefix(region, "cn-"):
		return "aws-cn"
	case strings.HasPrefix(region, "us-gov-"):
		return "aws-us-gov"
	default:
		return "aws"
	}
}
