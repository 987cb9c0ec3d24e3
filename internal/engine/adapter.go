package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/filterbuild"
	"github.com/opsguild/c7n-hub/internal/invocation"
	"github.com/opsguild/c7n-hub/internal/policyfile"
)

// Adapter runs one policy to completion against one tenant session.
type Adapter struct {
	Publisher NotifyPublisher
}

// Execute runs one policy end to end: inject, enrich, filter, act.
//
// eventFilters and providedResources are the filter builder's output
// for this policy's resource type; ctx carries cancellation (the
// orchestrator's deadline), invctx carries the correlation id and
// tenant explicitly — never through process-global state.
func (a *Adapter) Execute(
	ctx context.Context,
	invctx invocation.Context,
	pol policyfile.Policy,
	event *eventinfo.EventInfo,
	sess SessionProvider,
	eventFilters []filterbuild.Filter,
	providedResources []map[string]any,
	dryRun bool,
) ExecutionResult {
	result := ExecutionResult{
		PolicyName:   pol.Name,
		TenantID:     sess.TenantID(),
		ResourceType: pol.Resource,
		DryRun:       dryRun,
	}

	chain := injectedChain(eventFilters, pol.Filters)

	// providedResources, when present, replace enumeration outright.
	// This adapter has no general-purpose enumeration path of its own —
	// enumerating every registered resource type is the external policy
	// library's job — so a resource type with neither a prefetch hit
	// nor a supplied descriptor set simply matches nothing.
	resources := providedResources

	enrichProvenance(pol.Resource, event, resources)

	var matched []map[string]any
	for _, r := range resources {
		if matchesAll(r, chain) {
			matched = append(matched, r)
		}
	}
	result.ResourcesMatched = len(matched)

	if dryRun || len(matched) == 0 || len(pol.Actions) == 0 {
		return result
	}

	for _, action := range pol.Actions {
		if err := a.runAction(ctx, invctx, sess, event, pol.Name, action, matched); err != nil {
			slog.Error("policy action failed", "policy", pol.Name, "tenant", sess.TenantID(), "error", err)
			result.Error = err.Error()
			continue
		}
		result.ActionTaken = true
	}

	return result
}

// injectedChain prepends the event-derived filters to the authored
// filter list, so they always run before anything the policy's author
// wrote.
func injectedChain(eventFilters []filterbuild.Filter, authored []map[string]any) []map[string]any {
	chain := make([]map[string]any, 0, len(eventFilters)+len(authored))
	for _, f := range eventFilters {
		chain = append(chain, map[string]any{f.Key: f.Value})
	}
	chain = append(chain, authored...)
	return chain
}

func (a *Adapter) runAction(ctx context.Context, invctx invocation.Context, sess SessionProvider, event *eventinfo.EventInfo, policyName string, action map[string]any, matched []map[string]any) error {
	actionType, _ := action["type"].(string)
	switch actionType {
	case "notify":
		if a.Publisher == nil {
			return fmt.Errorf("notify action configured but no publisher bound")
		}
		return a.Publisher.Publish(ctx, invctx, sess.TenantID(), sess.Region(), event, policyName, action, matched)
	default:
		// Any other action type is the external policy library's
		// responsibility. Recording it as a no-op keeps a malformed or
		// unsupported action from aborting the policy outright.
		slog.Debug("action type has no built-in handler, skipping", "type", actionType, "policy", policyName)
		return nil
	}
}
