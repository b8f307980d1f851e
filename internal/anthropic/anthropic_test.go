package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jewelrender/jewelrender/internal/providers"
)

func testConfig() providers.Config {
	return providers.Config{
		Model:       "claude-3-5-sonnet-20241022",
		Temperature: 0,
		MaxTokens:   1024,
		Prompt:      "Analyze this jewelry image",
		ImageBase64: "aGVsbG8=",
		MediaType:   "image/jpeg",
	}
}

func TestClassifySendsSamplingParameters(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want %q", got, "test-key")
		}
		if got := r.Header.Get("anthropic-version"); got != apiVersion {
			t.Errorf("anthropic-version = %q, want %q", got, apiVersion)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": `{"category": "ring"}`}},
		})
	}))
	defer server.Close()

	provider := New()
	provider.BaseURL = server.URL

	reply, err := provider.Classify(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if reply != `{"category": "ring"}` {
		t.Errorf("reply = %q, want the text block contents", reply)
	}

	temperature, ok := payload["temperature"]
	if !ok {
		t.Fatal("request body has no temperature field")
	}
	if temperature != float64(0) {
		t.Errorf("temperature = %v, want 0", temperature)
	}
	if payload["max_tokens"] != float64(1024) {
		t.Errorf("max_tokens = %v, want 1024", payload["max_tokens"])
	}
	if payload["model"] != "claude-3-5-sonnet-20241022" {
		t.Errorf("model = %v", payload["model"])
	}
}

func TestClassifyUpstreamFailure(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	provider := New()
	provider.BaseURL = server.URL

	_, err := provider.Classify(context.Background(), testConfig())
	var upstream *providers.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", upstream.Status, http.StatusTooManyRequests)
	}
	if upstream.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", upstream.Provider)
	}
}

func TestClassifyMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := New().Classify(context.Background(), testConfig())
	if err == nil {
		t.Fatal("expected an error when ANTHROPIC_API_KEY is unset")
	}
}
