package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		record   LabeledImage
		expected string
	}{
		{
			name:     "uses labeled name when present",
			record:   LabeledImage{ImageName: "ring-5.jpg", ImageURL: "https://cdn.example.com/a/b.jpg"},
			expected: "ring-5.jpg",
		},
		{
			name:     "falls back to URL path segment",
			record:   LabeledImage{ImageURL: "https://cdn.example.com/catalog/ring-7.jpg"},
			expected: "ring-7.jpg",
		},
		{
			name:     "handles trailing slash",
			record:   LabeledImage{ImageURL: "https://cdn.example.com/catalog/ring-7.jpg/"},
			expected: "ring-7.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLoadJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "test.jsonl")

	testData := `{"image_url":"https://example.com/ring-1.jpg","image_name":"ring-1.jpg","category":"ring","tags":["diamond","solitaire"]}
{"image_url":"https://example.com/necklace-1.jpg","image_name":"necklace-1.jpg","category":"necklace","tags":["pearl"]}
{"image_url":"https://example.com/earring-1.jpg","image_name":"earring-1.jpg","category":"earring","tags":["hoop","silver"]}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}
	if records[0].Category != "ring" {
		t.Errorf("Expected category ring, got %s", records[0].Category)
	}
	if len(records[0].Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", records[0].Tags)
	}

	sample, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 2 {
		t.Errorf("Expected 2 sampled records, got %d", len(sample))
	}
	if sample[1].ImageName != "necklace-1.jpg" {
		t.Errorf("Expected necklace-1.jpg, got %s", sample[1].ImageName)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
	if _, err := loader.LoadSample(10); err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	loader := NewLoader("/nonexistent/path/file.jsonl")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
