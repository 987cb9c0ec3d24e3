package awsclients

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/opsguild/c7n-hub/internal/mapping"
)

// S3Store implements mapping.ObjectStore against S3, where the policy
// mapping and policy files live.
type S3Store struct {
	client *s3.Client
}

// NewS3Store wraps an s3.Client as a mapping.ObjectStore.
func NewS3Store(client *s3.Client) *S3Store {
	return &S3Store{client: client}
}

var _ mapping.ObjectStore = (*S3Store)(nil)

// Get fetches and fully reads the object at bucket/key.
func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
