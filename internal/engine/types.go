// Package engine is the policy engine adapter: it binds a tenant's
// assumed session into an authored policy, injects the filters and
// pre-fetched resources the filter builder produced, enriches matched
// descriptors with provenance, evaluates the policy's filter chain, and
// runs its actions.
//
// The filter/action DSL itself belongs to the external policy library.
// What this package owns instead is the extension surface that library
// plugs into: a typed SessionProvider bound at construction — never
// dynamic attribute injection into the library's own manager objects —
// and the NotifyPublisher seam. The built-in filter evaluator and
// notify action below are a minimal, genuinely-evaluating
// implementation sufficient to drive this repository's event-driven
// flows — not a reimplementation of the external DSL.
package engine

import (
	"context"

	"github.com/opsguild/c7n-hub/internal/awsclients"
	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/invocation"
)

// SessionProvider is the capability the adapter binds into the engine
// in place of monkey-patching the engine's client/session factories: it
// is the single source of per-tenant AWS clients for everything the
// policy touches — filter evaluation, describe calls an action might
// still need, and the action's own client use.
type SessionProvider interface {
	Clients() *awsclients.Clients
	TenantID() string
	Region() string
}

// NotifyPublisher is the seam the adapter uses to hand matched
// resources to the notification pipeline without importing it directly —
// internal/notify implements this interface structurally.
type NotifyPublisher interface {
	Publish(ctx context.Context, invctx invocation.Context, tenantID, region string, event *eventinfo.EventInfo, policyName string, action map[string]any, resources []map[string]any) error
}

// ExecutionResult summarizes one policy's run against one tenant.
type ExecutionResult struct {
	PolicyName       string
	TenantID         string
	ResourceType     string
	ResourcesMatched int
	ActionTaken      bool
	DryRun           bool
	Error            string
}
