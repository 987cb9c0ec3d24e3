package notify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// missingFieldFallback is what a template path that doesn't resolve
// renders to. Rendering never raises — a bad path must not abort the
// drain.
const missingFieldFallback = "N/A"

// subjectPlaceholder matches the "{account}"-style single-brace
// placeholders the subject line uses (plain string substitution, no
// control flow).
var subjectPlaceholder = regexp.MustCompile(`\{([A-Za-z0-9_.\[\]]+)\}`)

// bodyPlaceholder matches the "{{ event.detail.findings[0].severity }}"-
// style double-brace placeholders the Jinja-sourced body template uses.
// Only bare variable paths are supported (no filters, loops, or
// conditionals) — the subset the deployed templates actually use;
// anything else is left verbatim and will simply not substitute.
var bodyPlaceholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\[\]]+)\s*\}\}`)

// renderSubject applies single-brace substitution against data.
func renderSubject(tmpl string, data map[string]any) string {
	return subjectPlaceholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		path := subjectPlaceholder.FindStringSubmatch(match)[1]
		return resolvePath(data, path)
	})
}

// renderBody applies the Jinja-subset double-brace substitution against data.
func renderBody(tmpl string, data map[string]any) string {
	return bodyPlaceholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		path := bodyPlaceholder.FindStringSubmatch(match)[1]
		return resolvePath(data, path)
	})
}

// resolvePath walks a dotted path with optional "[n]" index suffixes
// (e.g. "event.detail.findings[0].Severity.Label") through nested
// maps/slices, returning missingFieldFallback the moment any segment is
// absent or out of range.
func resolvePath(data map[string]any, path string) string {
	var cur any = data
	for _, seg := range strings.Split(path, ".") {
		key, idx, hasIdx := parseSegment(seg)

		m, ok := cur.(map[string]any)
		if !ok {
			return missingFieldFallback
		}
		v, present := m[key]
		if !present {
			return missingFieldFallback
		}
		if hasIdx {
			arr, ok := v.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return missingFieldFallback
			}
			v = arr[idx]
		}
		cur = v
	}
	return fmt.Sprintf("%v", cur)
}

var segmentIndex = regexp.MustCompile(`^([A-Za-z0-9_]+)\[(\d+)\]$`)

func parseSegment(seg string) (key string, idx int, hasIdx bool) {
	if m := segmentIndex.FindStringSubmatch(seg); m != nil {
		n, _ := strconv.Atoi(m[2])
		return m[1], n, true
	}
	return seg, 0, false
}
