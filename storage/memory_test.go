package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var out []string
	if err := s.Load(ctx, KeyJobs, &out); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound on empty store, got %v", err)
	}

	if err := s.Save(ctx, KeyJobs, []string{"a", "b"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Load(ctx, KeyJobs, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 || out[0] != "a" {
		t.Fatalf("unexpected round trip result: %v", out)
	}

	// Saves overwrite wholesale.
	if err := s.Save(ctx, KeyJobs, []string{"c"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Load(ctx, KeyJobs, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || out[0] != "c" {
		t.Fatalf("expected overwritten snapshot, got %v", out)
	}
}
