package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jewelrender/jewelrender/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier       string   `yaml:"identifier"`
	ExpectedCategory string   `yaml:"expectedcategory"`
	ActualCategory   string   `yaml:"actualcategory"`
	CategoryMatch    bool     `yaml:"categorymatch"`
	CategoryValid    bool     `yaml:"categoryvalid"`
	TagPrecision     float64  `yaml:"tagprecision"`
	TagRecall        float64  `yaml:"tagrecall"`
	TagF1            float64  `yaml:"tagf1"`
	TagsMissing      []string `yaml:"tagsmissing,omitempty"`
	TagsExtra        []string `yaml:"tagsextra,omitempty"`
	Description      string   `yaml:"description,omitempty"`
	Error            string   `yaml:"error,omitempty"`
}

// EvalSummary holds the run-level metrics
type EvalSummary struct {
	CategoryAccuracy  float64 `yaml:"categoryaccuracy"`
	InvalidCategories int     `yaml:"invalidcategories"`
	FallbackCount     int     `yaml:"fallbackcount"`
	AvgTagPrecision   float64 `yaml:"avgtagprecision"`
	AvgTagRecall      float64 `yaml:"avgtagrecall"`
	AvgTagF1          float64 `yaml:"avgtagf1"`
	SuccessCount      int     `yaml:"successcount"`
	FailureCount      int     `yaml:"failurecount"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Summary EvalSummary  `yaml:"summary"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in evals/ directory
func SaveToYAML(datasetPath string, agg *metrics.AggregateResults) (string, error) {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			Provider:    agg.Provider,
			Model:       agg.Model,
			DatasetPath: datasetPath,
			SampleSize:  agg.SampleSize,
			Timestamp:   timestamp,
		},
		Summary: EvalSummary{
			CategoryAccuracy:  agg.CategoryAccuracy,
			InvalidCategories: agg.InvalidCategories,
			FallbackCount:     agg.FallbackCount,
			AvgTagPrecision:   agg.AvgTagPrecision,
			AvgTagRecall:      agg.AvgTagRecall,
			AvgTagF1:          agg.AvgTagF1,
			SuccessCount:      agg.SuccessCount,
			FailureCount:      agg.FailureCount,
		},
	}

	for _, result := range agg.Results {
		entry := EvalResult{
			Identifier: result.Identifier,
			Error:      result.Error,
		}
		if result.Comparison != nil {
			entry.ExpectedCategory = result.Comparison.ExpectedCategory
			entry.ActualCategory = result.Comparison.ActualCategory
			entry.CategoryMatch = result.Comparison.CategoryMatch
			entry.CategoryValid = result.Comparison.CategoryValid
			entry.TagPrecision = result.Comparison.TagPrecision
			entry.TagRecall = result.Comparison.TagRecall
			entry.TagF1 = result.Comparison.TagF1
			entry.TagsMissing = result.Comparison.TagsMissing
			entry.TagsExtra = result.Comparison.TagsExtra
			entry.Description = result.Generated.Description
		}
		spec.Results = append(spec.Results, entry)
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	path := filepath.Join("evals", fmt.Sprintf("eval_%s_%s.yaml", agg.Provider, timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	return path, nil
}

// LoadFromYAML reads a saved evaluation report
func LoadFromYAML(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return &spec, nil
}
