package eventinfo

import "time"

// Classify inspects an inbound event's top-level "source" and
// "detail-type" fields (plus a handful of structural hints) and
// normalizes it into an EventInfo. Unknown shapes are not rejected —
// they come back with Source == SourceUnknown and empty generic
// resources, since a global policy mapping entry may still apply.
func Classify(raw map[string]any) (*EventInfo, error) {
	detailType := getString(raw, "detail-type")
	source := getString(raw, "source")

	if detailType == "" && source == "" {
		return nil, &ClassifyError{Kind: KindMalformed, Reason: "missing detail-type"}
	}

	info := &EventInfo{
		RawEvent:        raw,
		Region:          getString(raw, "region"),
		SourceAccountID: getString(raw, "account"),
	}
	if ts := getString(raw, "time"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			info.EventTime = t
		}
	}

	detail := getMap(raw, "detail")

	switch detectSource(detailType, source, detail) {
	case SourceCloudTrail:
		if len(detail) == 0 {
			return nil, &ClassifyError{Kind: KindMalformed, Reason: "empty detail for CloudTrail event"}
		}
		info.Source = SourceCloudTrail
		extractCloudTrail(detail, info)
	case SourceGuardDuty:
		if len(detail) == 0 {
			return nil, &ClassifyError{Kind: KindMalformed, Reason: "empty detail for GuardDuty finding"}
		}
		info.Source = SourceGuardDuty
		extractGuardDuty(detail, info)
	case SourceSecurityHub:
		if len(detail) == 0 {
			return nil, &ClassifyError{Kind: KindMalformed, Reason: "empty detail for Security Hub finding batch"}
		}
		info.Source = SourceSecurityHub
		extractSecurityHub(detail, info)
	case SourceConfig:
		if len(detail) == 0 {
			return nil, &ClassifyError{Kind: KindMalformed, Reason: "empty detail for Config change event"}
		}
		info.Source = SourceConfig
		extractConfig(detail, info)
	default:
		info.Source = SourceUnknown
		return info, nil
	}

	if info.SourceAccountID == "" && info.UserIdentity.AccountID != "" {
		info.SourceAccountID = info.UserIdentity.AccountID
	}

	return info, nil
}

// detectSource discriminates the event shape: the detail-type
// discriminator takes priority, falling back to "source" and then to
// structure (presence of eventName+eventSource, type+severity+resource,
// findings, or resourceType/configRuleName).
func detectSource(detailType, source string, detail map[string]any) Source {
	switch detailType {
	case "AWS API Call via CloudTrail":
		return SourceCloudTrail
	case "Security Hub Findings - Imported":
		return SourceSecurityHub
	}
	switch source {
	case "aws.guardduty":
		return SourceGuardDuty
	case "aws.securityhub":
		return SourceSecurityHub
	case "aws.config":
		return SourceConfig
	}

	// Structural fallback for events missing a recognizable discriminator.
	if getString(detail, "eventName") != "" && getString(detail, "eventSource") != "" {
		return SourceCloudTrail
	}
	if getString(detail, "type") != "" && detail["severity"] != nil && getMap(detail, "resource") != nil {
		return SourceGuardDuty
	}
	if getSlice(detail, "findings") != nil {
		return SourceSecurityHub
	}
	if getString(detail, "resourceType") != "" || getString(detail, "configRuleName") != "" {
		return SourceConfig
	}
	return SourceUnknown
}

func parseUserIdentity(detail map[string]any) UserIdentity {
	ui := getMap(detail, "userIdentity")
	return UserIdentity{
		Type:        getString(ui, "type"),
		PrincipalID: getString(ui, "principalId"),
		ARN:         getString(ui, "arn"),
		AccountID:   getString(ui, "accountId"),
		UserName:    getString(ui, "userName"),
	}
}
