package mapping

import "testing"

func sampleMapping() *Mapping {
	return &Mapping{
		Version: "1",
		EventMapping: map[string][]PolicyRef{
			"RunInstances": {
				{SourceFile: "aws-ec2-security.yml", PolicyName: "ec2-stop-unencrypted", ResourceType: "aws.ec2"},
			},
		},
		AccountMapping: map[string]AccountMapping{
			"222233334444": {
				Name:        "tenant-a",
				Environment: "prod",
				EventMapping: map[string][]PolicyRef{
					"CreateCacheCluster": {
						{SourceFile: "elasticache.yml", PolicyName: "cache-require-encryption", ResourceType: "aws.cache-cluster"},
					},
				},
			},
		},
	}
}

func TestResolve_FallsBackToGlobalWhenNoOverride(t *testing.T) {
	m := sampleMapping()
	refs := Resolve("999999999999", "RunInstances", m)
	if len(refs) != 1 || refs[0].PolicyName != "ec2-stop-unencrypted" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestResolve_TenantOverrideWins(t *testing.T) {
	m := sampleMapping()
	refs := Resolve("222233334444", "CreateCacheCluster", m)
	if len(refs) != 1 || refs[0].PolicyName != "cache-require-encryption" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestResolve_NoMatchReturnsEmpty(t *testing.T) {
	m := sampleMapping()
	refs := Resolve("222233334444", "DeleteBucket", m)
	if len(refs) != 0 {
		t.Fatalf("refs = %+v, want none", refs)
	}
}

func TestGroupByFile(t *testing.T) {
	refs := []PolicyRef{
		{SourceFile: "a.yml", PolicyName: "p1", ResourceType: "aws.ec2"},
		{SourceFile: "a.yml", PolicyName: "p2", ResourceType: "aws.ec2"},
		{SourceFile: "b.yml", PolicyName: "p3", ResourceType: "aws.s3"},
	}
	grouped := GroupByFile(refs)
	if len(grouped["a.yml"]) != 2 || len(grouped["b.yml"]) != 1 {
		t.Fatalf("grouped = %+v", grouped)
	}
}

func TestParse_MissingVersionFails(t *testing.T) {
	_, err := Parse([]byte(`{"event_mapping": {}}`))
	if err == nil {
		t.Fatal("expected validation error for missing version")
	}
}

func TestParse_MissingRequiredRefFieldsFails(t *testing.T) {
	_, err := Parse([]byte(`{"version":"1","event_mapping":{"RunInstances":[{"policy_name":"x"}]}}`))
	if err == nil {
		t.Fatal("expected validation error for missing resource/source_file")
	}
}
