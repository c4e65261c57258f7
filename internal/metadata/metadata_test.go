package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeReporter returns canned tag counts keyed by path.
type fakeReporter struct {
	counts map[string]int
	err    error
}

func (f *fakeReporter) TagCount(path string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[path], nil
}

func (f *fakeReporter) Close() error { return nil }

// createTestReporter creates a Reporter for testing, skipping when the
// exiftool binary is not installed.
func createTestReporter(t *testing.T) Reporter {
	t.Helper()
	r, err := NewReporter()
	if err != nil {
		t.Skipf("exiftool not available: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestTagCount(t *testing.T) {
	r := createTestReporter(t)

	path := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(path, []byte("some text content"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	count, err := r.TagCount(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// exiftool always reports at least the file system tags
	if count == 0 {
		t.Error("Expected at least one tag")
	}
}

func TestSavings(t *testing.T) {
	r := &fakeReporter{counts: map[string]int{
		"/in/photo.jpg":  42,
		"/out/photo.jpg": 12,
	}}

	stripped, err := Savings(r, "/in/photo.jpg", "/out/photo.jpg")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stripped.InputTags != 42 || stripped.OutputTags != 12 {
		t.Errorf("Savings = %+v, expected InputTags=42 OutputTags=12", stripped)
	}
}

func TestSavings_ReporterError(t *testing.T) {
	r := &fakeReporter{err: errors.New("extraction failed")}

	if _, err := Savings(r, "/in/photo.jpg", "/out/photo.jpg"); err == nil {
		t.Error("Expected error when tag extraction fails")
	}
}

func TestTagCount_MissingFile(t *testing.T) {
	r := createTestReporter(t)

	if _, err := r.TagCount(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("Expected error for missing file")
	}
}
