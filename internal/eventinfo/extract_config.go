package eventinfo

func extractConfig(detail map[string]any, info *EventInfo) {
	resourceID := getString(detail, "resourceId")

	configItem := getMap(detail, "configurationItem")
	if configItem == nil {
		// Some Config rule-compliance events nest resourceType/resourceId
		// directly at configurationItem level under a different key; fall
		// back to top-level detail fields only.
		configItem = detail
	}

	arn := getString(configItem, "ARN")
	if arn == "" {
		arn = getString(configItem, "arn")
	}
	if arn != "" {
		info.Generic.ARNs.Add(arn)
	}
	if resourceID == "" {
		resourceID = getString(configItem, "resourceId")
	}
	if resourceID != "" {
		info.Generic.IDs.Add(resourceID)
	}

	walkInto(getMap(configItem, "configuration"), &info.Generic)
}
