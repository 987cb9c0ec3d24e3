package mapping

import (
	"fmt"
	"log/slog"
)

// ValidationError is returned when a loaded mapping document fails its
// structural checks. It aborts the invocation — there is no
// partial-mapping recovery, unlike policy-level execution failures.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid policy mapping: " + e.Reason
}

// validate checks the required fields on the mapping document and every
// PolicyRef it contains. version and event_mapping are required at the
// top level; every PolicyRef requires policy_name, resource, source_file.
func validate(m *Mapping) error {
	if m.Version == "" {
		return &ValidationError{Reason: "version is required"}
	}
	if m.EventMapping == nil {
		return &ValidationError{Reason: "event_mapping is required"}
	}

	for eventName, refs := range m.EventMapping {
		if err := validateRefs("event_mapping", eventName, refs); err != nil {
			return err
		}
	}
	for tenantID, acct := range m.AccountMapping {
		for eventName, refs := range acct.EventMapping {
			if err := validateRefs(fmt.Sprintf("account_mapping[%s]", tenantID), eventName, refs); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRefs(section, eventName string, refs []PolicyRef) error {
	for i, ref := range refs {
		if ref.PolicyName == "" {
			return &ValidationError{Reason: fmt.Sprintf("%s[%s][%d]: policy_name is required", section, eventName, i)}
		}
		if ref.ResourceType == "" {
			return &ValidationError{Reason: fmt.Sprintf("%s[%s][%d]: resource is required", section, eventName, i)}
		}
		if ref.SourceFile == "" {
			return &ValidationError{Reason: fmt.Sprintf("%s[%s][%d]: source_file is required", section, eventName, i)}
		}
		if ref.ModeType != "" && !knownModeTypes[ref.ModeType] {
			slog.Warn("policy mapping: unrecognized mode_type, continuing",
				"section", section, "event_name", eventName, "policy_name", ref.PolicyName, "mode_type", ref.ModeType)
		}
	}
	return nil
}
