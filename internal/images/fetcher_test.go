package images

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write(payload)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher()

	t.Run("success", func(t *testing.T) {
		data, err := fetcher.Fetch(context.Background(), server.URL+"/ok")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(data) != len(payload) {
			t.Errorf("Expected %d bytes, got %d", len(payload), len(data))
		}
	})

	t.Run("non-success status", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), server.URL+"/forbidden")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("Expected FetchError, got %v", err)
		}
		if fetchErr.Status != http.StatusForbidden {
			t.Errorf("Status = %d, want 403", fetchErr.Status)
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/nope")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("Expected FetchError, got %v", err)
		}
		if fetchErr.Status != 0 {
			t.Errorf("Expected no HTTP status for a network failure, got %d", fetchErr.Status)
		}
	})
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0}, "image/png"},
		{"not an image", []byte("plain text payload"), "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMediaType(tt.data); got != tt.want {
				t.Errorf("DetectMediaType = %q, want %q", got, tt.want)
			}
		})
	}
}
