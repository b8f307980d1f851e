package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jewelrender/jewelrender/internal/providers"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Anthropic is a provider for the Claude messages API
type Anthropic struct {
	HTTPClient *http.Client
	BaseURL    string
}

// New returns a new Anthropic provider
func New() *Anthropic {
	return &Anthropic{
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		BaseURL: apiURL,
	}
}

// Classify sends the prompt and base64 image to Claude and returns the raw reply text
func (a *Anthropic) Classify(ctx context.Context, config providers.Config) (string, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":       config.Model,
		"max_tokens":  config.MaxTokens,
		"temperature": config.Temperature,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": config.Prompt,
					},
					{
						"type": "image",
						"source": map[string]string{
							"type":       "base64",
							"media_type": config.MediaType,
							"data":       config.ImageBase64,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.BaseURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &providers.UpstreamError{
			Provider: "anthropic",
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	for _, block := range response.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text content returned from Claude")
}
