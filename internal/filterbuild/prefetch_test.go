package filterbuild

import (
	"context"
	"testing"

	"github.com/opsguild/c7n-hub/internal/eventinfo"
	"github.com/opsguild/c7n-hub/internal/restype"
)

// The same mixed id set must route to a different id per resource type,
// driven purely by each type's registered prefix.
func TestTypedFilter_IDPrefixSelectsPerType(t *testing.T) {
	g := genericWith(nil, []string{"i-abc", "ami-xyz", "vol-1"}, nil)

	tests := []struct {
		resourceType string
		wantKey      string
		wantValue    string
	}{
		{"aws.ec2", "InstanceId", "i-abc"},
		{"aws.ami", "ImageId", "ami-xyz"},
		{"aws.ebs", "VolumeId", "vol-1"},
	}
	for _, tt := range tests {
		spec, ok := restype.Lookup(tt.resourceType)
		if !ok {
			t.Fatalf("%s not registered", tt.resourceType)
		}
		filters := typedFilter(g, tt.resourceType, spec)
		if len(filters) != 1 || filters[0].Key != tt.wantKey || filters[0].Value != tt.wantValue {
			t.Errorf("%s: filters = %+v, want {%s %s}", tt.resourceType, filters, tt.wantKey, tt.wantValue)
		}
	}
}

func TestFirstWithPrefix(t *testing.T) {
	var set eventinfo.ResourceSet
	set.Add("ami-xyz")
	set.Add("vol-1")
	set.Add("vol-2")

	if got := firstWithPrefix(set, "vol-"); got != "vol-1" {
		t.Fatalf("firstWithPrefix = %q, want vol-1", got)
	}
	if got := firstWithPrefix(set, "snap-"); got != "" {
		t.Fatalf("firstWithPrefix = %q, want empty for absent prefix", got)
	}
}

// Every prefetcher must return (nil, nil) — not an error, not a panic —
// when the event carries nothing it can resolve, so Build degrades to
// the filter path.
func TestPrefetchers_NoInputYieldsNothing(t *testing.T) {
	event := &eventinfo.EventInfo{RawEvent: map[string]any{}}
	for resourceType, fn := range prefetchers {
		resources, err := fn(context.Background(), nil, event)
		if err != nil {
			t.Errorf("%s: err = %v, want nil", resourceType, err)
		}
		if resources != nil {
			t.Errorf("%s: resources = %+v, want nil", resourceType, resources)
		}
	}
}

func TestPrefetchCacheCluster_SynthesisPreservesResponseFields(t *testing.T) {
	event := &eventinfo.EventInfo{
		RawEvent: map[string]any{
			"detail": map[string]any{
				"responseElements": map[string]any{
					"cacheClusterId":             "test-1",
					"atRestEncryptionEnabled":    false,
					"transitEncryptionEnabled":   false,
					"autoMinorVersionUpgrade":    true,
					"cacheClusterStatus":         "creating",
					"preferredMaintenanceWindow": "sun:05:00-sun:06:00",
				},
			},
		},
	}
	resources, err := prefetchCacheClusterFromResponse(context.Background(), nil, event)
	if err != nil {
		t.Fatalf("prefetchCacheClusterFromResponse: %v", err)
	}
	if len(resources) != 1 {
		t.Fatalf("resources = %+v", resources)
	}
	r := resources[0]
	if r["CacheClusterId"] != "test-1" || r["AtRestEncryptionEnabled"] != false {
		t.Fatalf("camel→Pascal conversion lost fields: %+v", r)
	}
	if r["CacheClusterStatus"] != "creating" {
		t.Fatalf("CacheClusterStatus = %v, want the response's own value preserved", r["CacheClusterStatus"])
	}
	if got, ok := r["c7n:MatchedFilters"].([]string); !ok || len(got) != 1 || got[0] != "event-filter" {
		t.Fatalf("c7n:MatchedFilters = %v", r["c7n:MatchedFilters"])
	}
}

func TestPrefetchCacheCluster_StatusDefaultedWhenAbsent(t *testing.T) {
	event := &eventinfo.EventInfo{
		RawEvent: map[string]any{
			"detail": map[string]any{
				"responseElements": map[string]any{"cacheClusterId": "test-1"},
			},
		},
	}
	resources, err := prefetchCacheClusterFromResponse(context.Background(), nil, event)
	if err != nil {
		t.Fatalf("prefetchCacheClusterFromResponse: %v", err)
	}
	if resources[0]["CacheClusterStatus"] != "creating" {
		t.Fatalf("CacheClusterStatus = %v, want the creating default", resources[0]["CacheClusterStatus"])
	}
}

func TestPascalCase(t *testing.T) {
	tests := map[string]string{
		"cacheClusterId": "CacheClusterId",
		"engine":         "Engine",
		"ARN":            "ARN",
		"":               "",
	}
	for in, want := range tests {
		if got := pascalCase(in); got != want {
			t.Errorf("pascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}
