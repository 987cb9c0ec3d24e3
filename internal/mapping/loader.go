package mapping

import (
	"context"
	"encoding/json"
	"fmt"
)

// ObjectStore is the minimal capability the loader needs from object
// storage. awsclients.S3Store implements it against S3; tests use an
// in-memory fake.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// Load fetches, parses, and validates the mapping document at
// bucket/key. A validation or parse error aborts the invocation — the
// caller should surface it as a configuration failure, not retry.
func Load(ctx context.Context, store ObjectStore, bucket, key string) (*Mapping, error) {
	data, err := store.Get(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("fetch policy mapping %s/%s: %w", bucket, key, err)
	}
	return Parse(data)
}

// Parse validates and decodes mapping JSON already in hand. Split out
// from Load so tests can exercise parsing without a store.
func Parse(data []byte) (*Mapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse policy mapping: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
