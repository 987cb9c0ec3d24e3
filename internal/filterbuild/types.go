// Package filterbuild turns the resources an event names into the
// smallest correct policy input — either a precise filter the policy
// engine can push into its enumeration, or an exact list of pre-fetched
// resource descriptors that bypasses enumeration entirely.
package filterbuild

// Filter is a single equality filter the policy engine's filter chain
// understands: {key: <field>, value: <value>}.
type Filter struct {
	Key   string
	Value string
}

// Result is what Build hands to the policy engine adapter.
type Result struct {
	Filters           []Filter
	ProvidedResources []map[string]any
}

// matchedFiltersTag is attached to every descriptor the API-describe and
// synthesis prefetch patterns produce, so downstream filters and
// renderers can tell a resource was resolved from the event rather than
// enumerated.
const matchedFiltersTag = "event-filter"
