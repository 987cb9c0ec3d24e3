package filterbuild

import (
	"context"
	"log/slog"
	"strings"

	"github.com/opsguild/c7n-hub/internal/awsclients"
	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/restype"
)

// Build selects the policy input with a first-match-wins strategy:
//
//  1. an ARN generic to the event whose service matches resourceType
//     becomes the resource's native ARN filter;
//  2. else an id whose prefix (when the type constrains one) matches
//     becomes an id filter;
//  3. else a name becomes a name filter;
//  4. else no filter is emitted.
//
// After the filter is derived, a resource type this package knows how to
// prefetch has the matching API called directly; when that returns
// descriptors they are handed back as provided_resources and the filter
// is dropped, bypassing the filter chain entirely. An unregistered
// resource type skips both steps and gets naive equality filters on
// Id/Name/Arn as a last resort.
//
// Prefetching never fails Build: an API error during prefetch is logged
// and Build falls back to whatever filter it already derived.
func Build(ctx context.Context, clients *awsclients.Clients, event *eventinfo.EventInfo, resourceType string) Result {
	spec, ok := restype.Lookup(resourceType)
	if !ok {
		return Result{Filters: naiveFallback(event.Generic)}
	}

	filters := typedFilter(event.Generic, resourceType, spec)

	if prefetch, ok := prefetchers[resourceType]; ok {
		resources, err := prefetch(ctx, clients, event)
		if err != nil {
			slog.Warn("prefetch failed, falling back to filter", "resource_type", resourceType, "error", err)
		} else if len(resources) > 0 {
			return Result{ProvidedResources: resources}
		}
	}

	return Result{Filters: filters}
}

// typedFilter applies steps 1-3 of the strategy. It returns at most one
// filter: a registered resource type never gets more than one primary
// filter, keyed exactly by the type's ARN/ID/name field.
func typedFilter(g eventinfo.GenericResources, resourceType string, spec restype.Spec) []Filter {
	for _, arn := range g.ARNs.Values() {
		if restype.ArnMatchesType(arn, resourceType) {
			return []Filter{{Key: spec.ARNField, Value: arn}}
		}
	}

	if spec.IDPrefix != "" {
		for _, id := range g.IDs.Values() {
			if strings.HasPrefix(id, spec.IDPrefix) {
				return []Filter{{Key: spec.IDField, Value: id}}
			}
		}
	} else if g.IDs.Len() > 0 {
		return []Filter{{Key: spec.IDField, Value: g.IDs.Values()[0]}}
	}

	if g.Names.Len() > 0 {
		return []Filter{{Key: spec.NameField, Value: g.Names.Values()[0]}}
	}

	return nil
}

// naiveFallback is the last-resort branch for resource types this module
// has no field map for: emit equality filters on whatever shape of
// identifier the event happened to carry, so the engine has something to
// narrow on. Unlike typedFilter this may emit more than one filter, since
// without a field map there is no way to know which single attribute the
// unregistered type's authored filters expect.
func naiveFallback(g eventinfo.GenericResources) []Filter {
	var filters []Filter
	if g.IDs.Len() > 0 {
		filters = append(filters, Filter{Key: "Id", Value: g.IDs.Values()[0]})
	}
	if g.Names.Len() > 0 {
		filters = append(filters, Filter{Key: "Name", Value: g.Names.Values()[0]})
	}
	if g.ARNs.Len() > 0 {
		filters = append(filters, Filter{Key: "Arn", Value: g.ARNs.Values()[0]})
	}
	return filters
}
