package restype

import "testing"

func TestArnMatchesType(t *testing.T) {
	tests := []struct {
		name         string
		arn          string
		resourceType string
		want         bool
	}{
		{"ec2 instance arn matches ec2", "arn:aws:ec2:us-east-1:111:instance/i-0123", "aws.ec2", true},
		{"s3 bucket arn rejected for ec2", "arn:aws:s3:::my-bucket", "aws.ec2", false},
		{"alb arn matches app-elb", "arn:aws:elasticloadbalancing:us-east-1:111:loadbalancer/app/web/abcd", "aws.app-elb", true},
		{"unknown type never matches", "arn:aws:ec2:us-east-1:111:instance/i-0123", "aws.nonexistent", false},
		{"malformed arn never matches", "not-an-arn", "aws.ec2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArnMatchesType(tt.arn, tt.resourceType); got != tt.want {
				t.Errorf("ArnMatchesType(%q, %q) = %v, want %v", tt.arn, tt.resourceType, got, tt.want)
			}
		})
	}
}

func TestLookup_S3NameFieldIsConsistent(t *testing.T) {
	spec, ok := Lookup("aws.s3")
	if !ok {
		t.Fatal("aws.s3 not registered")
	}
	if spec.NameField != "Name" {
		t.Fatalf("aws.s3 NameField = %q, want Name", spec.NameField)
	}
}
