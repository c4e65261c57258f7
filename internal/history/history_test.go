package history

import (
	"math"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddComputesSavedPct(t *testing.T) {
	store := openTestStore(t)

	record := &Record{
		Kind:         "image",
		Tool:         "magick",
		InputPath:    "/in/photo.jpg",
		OutputPath:   "/out/photo.jpg",
		OriginalKB:   500,
		CompressedKB: 120,
	}
	if err := store.Add(record); err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	if math.Abs(record.SavedPct-76) > 1e-9 {
		t.Errorf("Expected 76%% saved, got %v", record.SavedPct)
	}
}

func TestAdd_ZeroOriginalSize(t *testing.T) {
	store := openTestStore(t)

	record := &Record{Kind: "pdf", Tool: "gs", CompressedKB: 10}
	if err := store.Add(record); err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}
	if record.SavedPct != 0 {
		t.Errorf("Expected 0%% saved for unknown original size, got %v", record.SavedPct)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	kinds := []string{"pdf", "image", "video", "audio"}
	for _, kind := range kinds {
		if err := store.Add(&Record{Kind: kind, Tool: "x", OriginalKB: 100, CompressedKB: 50}); err != nil {
			t.Fatalf("Failed to add record: %v", err)
		}
	}

	records, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	all, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(all) != len(kinds) {
		t.Errorf("Expected %d records, got %d", len(kinds), len(all))
	}
}
