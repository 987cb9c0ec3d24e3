package eventinfo

func extractGuardDuty(detail map[string]any, info *EventInfo) {
	info.FindingType = getString(detail, "type")
	info.FindingSeverity = getFloat(detail, "severity")
	info.FindingID = getString(detail, "id")

	resource := getMap(detail, "resource")
	walkInto(resource, &info.Generic)

	if instDetails := getMap(resource, "instanceDetails"); instDetails != nil {
		if id := getString(instDetails, "instanceId"); id != "" {
			info.InstanceID = id
		}
	}

	if akDetails := getMap(resource, "accessKeyDetails"); akDetails != nil {
		if u := getString(akDetails, "userName"); u != "" {
			info.Username = u
		}
	}

	if s3Details := getSlice(resource, "s3BucketDetails"); len(s3Details) > 0 {
		if b, ok := s3Details[0].(map[string]any); ok {
			if name := getString(b, "name"); name != "" {
				info.BucketName = name
			}
		}
	}

	if eksDetails := getMap(resource, "eksClusterDetails"); eksDetails != nil {
		if arn := getString(eksDetails, "arn"); arn != "" {
			info.Generic.ARNs.Add(arn)
		}
	}
}
