package engine

import (
	"fmt"
	"strings"
)

// matchesAll reports whether resource satisfies every filter in chain,
// in order — the filter chain, not the prefetch path, is the authority
// on match semantics. Each filter is evaluated against two accepted
// shapes:
//
//   - direct field equality: {"<Field>": <value>, ...} — every key must
//     equal the resource's value at that field (this is the shape
//     event-derived filters from internal/filterbuild use);
//   - c7n-style {"type": "value", "key": "<dotted.path|tag:Name>", "value": <value>} —
//     the authored-policy convention, supporting AWS's {Key,Value} tag
//     list via the "tag:" prefix and dotted paths into nested maps.
func matchesAll(resource map[string]any, chain []map[string]any) bool {
	for _, f := range chain {
		if !matchesOne(resource, f) {
			return false
		}
	}
	return true
}

func matchesOne(resource map[string]any, filter map[string]any) bool {
	if _, isTyped := filter["type"]; isTyped {
		if key, ok := filter["key"].(string); ok {
			got, found := getField(resource, key)
			if !found {
				return false
			}
			return equalLoose(got, filter["value"])
		}
	}

	for k, want := range filter {
		got, found := getField(resource, k)
		if !found || !equalLoose(got, want) {
			return false
		}
	}
	return true
}

// getField resolves key against resource, supporting dotted paths into
// nested maps and the "tag:Name" convention for AWS's {Key,Value} tag
// lists.
func getField(resource map[string]any, key string) (any, bool) {
	if strings.HasPrefix(key, "tag:") {
		return findTag(resource, strings.TrimPrefix(key, "tag:"))
	}

	parts := strings.Split(key, ".")
	var cur any = resource
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, present := m[p]
		if !present {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func findTag(resource map[string]any, name string) (any, bool) {
	tags, _ := resource["Tags"].([]any)
	for _, t := range tags {
		m, ok := t.(map[string]any)
		if !ok {
			continue
		}
		if k, _ := m["Key"].(string); k == name {
			return m["Value"], true
		}
	}
	return nil, false
}

// equalLoose compares values that may have crossed a JSON round trip
// (numbers as float64, etc.) by normalizing both sides to their string
// form before comparing.
func equalLoose(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
