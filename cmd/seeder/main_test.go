package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tour_service/internal/adapters/feed"
	"tour_service/internal/shared"
)

func TestFileFeed(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tours.json")
	if err := os.WriteFile(p, []byte(`[{"title":"Labuan Bajo Sailing","price":350,"days":3}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := fileFeed(p).FetchTours(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(recs) != 1 || recs[0]["title"] != "Labuan Bajo Sailing" {
		t.Fatalf("unexpected records: %+v", recs)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte(`{"title":"not a list"}`), 0o600)
	if _, err := fileFeed(bad).FetchTours(context.Background()); err == nil {
		t.Fatalf("expected error for non-array file")
	}
}

func TestSource_PicksFeedForURL(t *testing.T) {
	src, err := source(shared.Config{SeedURL: "https://partner.example/export"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, ok := src.(*feed.Client); !ok {
		t.Fatalf("expected feed client, got %T", src)
	}
	src, _ = source(shared.Config{SeedFile: "tours.json"})
	if _, ok := src.(fileFeed); !ok {
		t.Fatalf("expected file feed, got %T", src)
	}
}
