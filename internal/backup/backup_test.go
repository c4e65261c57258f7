package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go"
)

func TestCalculateMD5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	hash, err := calculateMD5(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// md5("hello world")
	expected := "5eb63bbbe01eeed093cb22bb8f5acdc3"
	if hash != expected {
		t.Errorf("Expected hash %s, got %s", expected, hash)
	}
}

func TestCalculateMD5_MissingFile(t *testing.T) {
	if _, err := calculateMD5(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// mockAPIError implements smithy.APIError for testing
type mockAPIError struct {
	code string
}

func (m *mockAPIError) Error() string {
	return m.code
}

func (m *mockAPIError) ErrorCode() string {
	return m.code
}

func (m *mockAPIError) ErrorMessage() string {
	return m.code
}

func (m *mockAPIError) ErrorFault() smithy.ErrorFault {
	return smithy.FaultClient
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"api NotFound code", &mockAPIError{code: "NotFound"}, true},
		{"api other code", &mockAPIError{code: "AccessDenied"}, false},
		{"message fallback 404", errors.New("operation error: StatusCode: 404"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFoundError(tt.err); got != tt.expected {
				t.Errorf("isNotFoundError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}
