// Package policyfile loads and lazily caches the YAML policy documents
// referenced by the policy mapping.
package policyfile

// Policy is one entry in a policy file's top-level "policies" array.
// The filter/action DSL belongs to the external policy library —
// Filters and Actions are kept as opaque documents and handed to it via
// internal/engine's extension surface.
type Policy struct {
	Name     string           `yaml:"name"`
	Resource string           `yaml:"resource"`
	Filters  []map[string]any `yaml:"filters,omitempty"`
	Actions  []map[string]any `yaml:"actions,omitempty"`
	Mode     map[string]any   `yaml:"mode,omitempty"`
}

// File is the top-level document: {policies: [...]}.
type File struct {
	Policies []Policy `yaml:"policies"`
}

// ByName returns the named policy, or nil if the file doesn't contain it.
func (f *File) ByName(name string) *Policy {
	if f == nil {
		return nil
	}
	for i := range f.Policies {
		if f.Policies[i].Name == name {
			return &f.Policies[i]
		}
	}
	return nil
}
