package invocation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type testResult struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func TestStore_PutThenGetRoundTrips(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ledger_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := NewStore(StoreConfig{DSN: filepath.Join(tmpDir, "ledger.db")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	want := testResult{Status: "success", Count: 3}

	if err := store.Put(ctx, "event-a", "tag-untagged-ec2", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got testResult
	hit, err := store.Get(ctx, "event-a", "tag-untagged-ec2", &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected a ledger hit after Put")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStore_GetMissWhenNeverRecorded(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ledger_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := NewStore(StoreConfig{DSN: filepath.Join(tmpDir, "ledger.db")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	var got testResult
	hit, err := store.Get(context.Background(), "never-seen", "some-policy", &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hit {
		t.Fatal("expected no hit for an unrecorded key")
	}
}

func TestStore_PutOverwritesPriorEntry(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ledger_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := NewStore(StoreConfig{DSN: filepath.Join(tmpDir, "ledger.db")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Put(ctx, "event-a", "policy-x", testResult{Status: "failed", Count: 0}); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := store.Put(ctx, "event-a", "policy-x", testResult{Status: "success", Count: 1}); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	var got testResult
	hit, err := store.Get(ctx, "event-a", "policy-x", &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit || got.Status != "success" || got.Count != 1 {
		t.Errorf("got %+v (hit=%v), want the replayed entry", got, hit)
	}
}
