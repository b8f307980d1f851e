package providers

import (
	"context"
	"fmt"
)

// Config represents one classification request to an LLM provider
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string
	ImageBase64 string
	MediaType   string
}

// Provider defines the interface for a vision-capable LLM provider.
// Classify returns the model's raw reply text without interpreting it;
// turning that text into a catalog record is the normalizer's job.
type Provider interface {
	Classify(ctx context.Context, config Config) (string, error)
}

// UpstreamError reports a non-success response from a model API
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.Status, e.Body)
}
