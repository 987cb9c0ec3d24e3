package eventinfo

import "strings"

func extractSecurityHub(detail map[string]any, info *EventInfo) {
	findings := getSlice(detail, "findings")
	if len(findings) == 0 {
		return
	}

	first, _ := findings[0].(map[string]any)
	if first != nil {
		info.FindingID = getString(first, "Id")
		if types := getSlice(first, "Types"); len(types) > 0 {
			if t, ok := types[0].(string); ok {
				info.FindingType = t
			}
		}
		if sev := getMap(first, "Severity"); sev != nil {
			info.FindingSeverity = getFloat(sev, "Normalized")
		}
	}

	for _, f := range findings {
		finding, ok := f.(map[string]any)
		if !ok {
			continue
		}
		for _, r := range getSlice(finding, "Resources") {
			res, ok := r.(map[string]any)
			if !ok {
				continue
			}
			id := getString(res, "Id")
			classifyByShape(id, &info.Generic)
		}
	}
}

// classifyByShape classifies a Security Hub Resources[*].Id purely by its
// own shape: arn:-prefixed values are ARNs, slash-delimited values are
// treated as names, everything else as an opaque id.
func classifyByShape(v string, out *GenericResources) {
	if v == "" {
		return
	}
	switch {
	case strings.HasPrefix(v, "arn:"):
		out.ARNs.Add(v)
	case strings.Contains(v, "/"):
		out.Names.Add(v)
	default:
		out.IDs.Add(v)
	}
}
