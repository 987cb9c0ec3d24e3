// Package mapping implements the two-tier policy resolver: it loads the
// account-policy mapping table from object storage and resolves a
// (tenant, event name) pair to the policy files and policy names that
// should run.
package mapping

// PolicyRef is one entry in an event_mapping list: a pointer to a named
// policy inside a policy file, plus enough metadata for the filter
// builder and mode validation to act without opening the file.
type PolicyRef struct {
	SourceFile   string `json:"source_file" yaml:"source_file"`
	PolicyName   string `json:"policy_name" yaml:"policy_name"`
	ResourceType string `json:"resource" yaml:"resource"`
	ModeType     string `json:"mode_type,omitempty" yaml:"mode_type,omitempty"`
}

// AccountMapping is a tenant's override of the global event_mapping.
type AccountMapping struct {
	Name         string                 `json:"name"`
	Environment  string                 `json:"environment"`
	EventMapping map[string][]PolicyRef `json:"event_mapping"`
}

// Mapping is the immutable configuration loaded from object storage.
type Mapping struct {
	Version        string                    `json:"version"`
	EventMapping   map[string][]PolicyRef    `json:"event_mapping"`
	AccountMapping map[string]AccountMapping `json:"account_mapping"`
}

// knownModeTypes is the enum of mode_type values this implementation
// recognizes. An unrecognized value warns rather than failing the load,
// so a mapping authored against a newer mode still deploys (see
// validate.go).
var knownModeTypes = map[string]bool{
	"cloudtrail": true,
	"periodic":   true,
	"config":     true,
	"":           true, // absent is fine; defaults are mode-specific downstream
}
