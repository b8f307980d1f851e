package evalcmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jewelrender/jewelrender/internal/cataloging"
	"github.com/jewelrender/jewelrender/internal/eval/dataset"
	"github.com/jewelrender/jewelrender/internal/eval/metrics"
	"github.com/jewelrender/jewelrender/internal/eval/results"
	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the "eval run" command
func NewRunCmd() *cobra.Command {
	var (
		datasetPath string
		sampleSize  int
		provider    string
		model       string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run classification evaluation against a labeled dataset",
		Long: `Runs every labeled image in the dataset through the live analysis
pipeline and scores category accuracy and tag precision/recall against the
labels. Datasets are Parquet or JSONL files with image_url, image_name,
category, and tags columns.`,
		Example: `  # Evaluate the default provider on 25 images
  jewelrender eval run --dataset labeled.parquet --sample 25

  # Compare providers
  jewelrender eval run --dataset labeled.jsonl --provider gemini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, datasetPath, sampleSize, provider, model, concurrency)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to labeled dataset (.parquet or .jsonl)")
	cmd.Flags().IntVarP(&sampleSize, "sample", "s", 0, "Evaluate at most this many images (0 = all)")
	cmd.Flags().StringVarP(&provider, "provider", "P", "", "LLM provider (default $CLASSIFY_PROVIDER or anthropic)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model override")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "Concurrent analysis calls")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeRun(cmd *cobra.Command, datasetPath string, sampleSize int, provider, model string, concurrency int) error {
	if provider == "" {
		provider = os.Getenv("CLASSIFY_PROVIDER")
	}
	if provider == "" {
		provider = "anthropic"
	}

	slog.Info("Starting evaluation run", "dataset", datasetPath, "provider", provider, "model", model)

	loader := dataset.NewLoader(datasetPath)
	var (
		labeled []dataset.LabeledImage
		err     error
	)
	if sampleSize > 0 {
		labeled, err = loader.LoadSample(sampleSize)
	} else {
		labeled, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "images", len(labeled))

	service, err := cataloging.NewServiceFor(provider, model)
	if err != nil {
		return err
	}

	// Process images with concurrency control
	slog.Info("Processing images", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.EvaluationResult, len(labeled))

	for i, item := range labeled {
		wg.Add(1)
		go func(idx int, item dataset.LabeledImage) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing image", "name", item.DisplayName(), "progress", fmt.Sprintf("%d/%d", idx+1, len(labeled)))
			resultsChan <- evaluateImage(cmd, service, item)
		}(i, item)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	evalResults := make([]metrics.EvaluationResult, 0, len(labeled))
	for result := range resultsChan {
		evalResults = append(evalResults, result)
	}

	agg := metrics.Aggregate(evalResults, provider, model)
	agg.PrintSummary()

	path, err := results.SaveToYAML(datasetPath, agg)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Printf("\nResults saved to: %s\n", path)
	fmt.Printf("\nGenerate a summary with:\n")
	fmt.Printf("  jewelrender eval report --results %s\n", path)

	return nil
}

func evaluateImage(cmd *cobra.Command, service *cataloging.Service, item dataset.LabeledImage) metrics.EvaluationResult {
	start := time.Now()

	record, err := service.AnalyzeImage(cmd.Context(), models.AnalysisRequest{
		ImageURL:  item.ImageURL,
		ImageName: item.DisplayName(),
		UserID:    "eval",
	})

	result := metrics.EvaluationResult{
		Identifier:     item.DisplayName(),
		ProcessingTime: time.Since(start),
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Generated = record
	result.Comparison = metrics.CompareRecords(item.Category, item.Tags, record)
	return result
}
