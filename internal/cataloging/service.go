package cataloging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jewelrender/jewelrender/internal/anthropic"
	"github.com/jewelrender/jewelrender/internal/gemini"
	"github.com/jewelrender/jewelrender/internal/images"
	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/jewelrender/jewelrender/internal/normalize"
	"github.com/jewelrender/jewelrender/internal/openai"
	"github.com/jewelrender/jewelrender/internal/providers"
)

// ImageFetcher retrieves image bytes for analysis
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Service runs the analysis pipeline: fetch image, classify with the
// configured LLM provider, normalize the reply into a JewelryRecord.
type Service struct {
	fetcher  ImageFetcher
	provider providers.Provider
	model    string
}

// NewService builds a Service from the environment. CLASSIFY_PROVIDER
// selects the upstream model API (default "anthropic"); CLASSIFY_MODEL
// overrides the provider's default model.
func NewService() (*Service, error) {
	return NewServiceFor(os.Getenv("CLASSIFY_PROVIDER"), os.Getenv("CLASSIFY_MODEL"))
}

// NewServiceFor builds a Service for an explicit provider and model,
// falling back to sensible defaults when either is empty.
func NewServiceFor(name, model string) (*Service, error) {
	if name == "" {
		name = "anthropic"
	}

	var provider providers.Provider
	switch name {
	case "anthropic":
		provider = anthropic.New()
	case "gemini":
		provider = gemini.New()
	case "openai":
		provider = openai.New()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}

	if model == "" {
		model = defaultModel(name)
	}

	if env := CredentialEnv(name); os.Getenv(env) == "" {
		slog.Warn("Provider API key not configured; analysis requests will fail", "provider", name, "env", env)
	}

	return NewServiceWith(images.NewFetcher(), provider, model), nil
}

// CredentialEnv names the environment variable holding the API key for a
// supported provider.
func CredentialEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// NewServiceWith builds a Service from explicit collaborators
func NewServiceWith(fetcher ImageFetcher, provider providers.Provider, model string) *Service {
	return &Service{
		fetcher:  fetcher,
		provider: provider,
		model:    model,
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-3-5-sonnet-20241022"
	case "gemini":
		return "gemini-2.5-flash"
	case "openai":
		return "gpt-4o"
	default:
		return ""
	}
}

// AnalyzeImage classifies the image behind req.ImageURL. Fetch failures and
// upstream model failures are returned as-is for the HTTP layer to
// translate; once the model has replied, normalization cannot fail.
func (s *Service) AnalyzeImage(ctx context.Context, req models.AnalysisRequest) (models.JewelryRecord, error) {
	slog.Info("Analyzing jewelry image", "image", req.ImageName, "user", req.UserID)

	imageData, err := s.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		return models.JewelryRecord{}, err
	}

	raw, err := s.provider.Classify(ctx, providers.Config{
		Model:       s.model,
		Temperature: 0,
		MaxTokens:   1024,
		Prompt:      BuildPrompt(req.ImageName),
		ImageBase64: images.Encode(imageData),
		MediaType:   images.DetectMediaType(imageData),
	})
	if err != nil {
		return models.JewelryRecord{}, err
	}

	record := normalize.Normalize(raw, req.ImageName)
	slog.Info("Classified jewelry image", "image", req.ImageName, "category", record.Category, "tags", len(record.Tags))
	return record, nil
}
