package invocation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// EventKey derives a stable idempotence key for a raw control-plane
// event. Sources vary in whether they carry a usable unique id
// (CloudTrail's eventID field, GuardDuty's id, a SecurityHub finding
// id), so rather than special-case each shape, the key is the SHA-256
// of the event's own canonical JSON encoding: the same delivery,
// however many times the host redelivers it, hashes identically.
func EventKey(rawEvent map[string]any) string {
	data, err := json.Marshal(canonicalize(rawEvent))
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// canonicalize sorts map keys recursively so two decodes of the same
// JSON document always marshal back to identical bytes.
func canonicalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, len(val)*2)
		for _, k := range keys {
			out = append(out, k, canonicalize(val[k]))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = canonicalize(e)
		}
		return out
	default:
		return val
	}
}
