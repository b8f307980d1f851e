package evalcmd

import (
	"fmt"
	"sort"

	"github.com/jewelrender/jewelrender/internal/eval/results"
	"github.com/spf13/cobra"
)

// NewReportCmd creates the "eval report" command
func NewReportCmd() *cobra.Command {
	var resultsPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a saved evaluation run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath)
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Path to a saved eval YAML file")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func executeReport(resultsPath string) error {
	spec, err := results.LoadFromYAML(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	fmt.Println("========================================")
	fmt.Println("Jewelry Classification Evaluation Report")
	fmt.Println("========================================")
	fmt.Printf("Provider:  %s\n", spec.Config.Provider)
	fmt.Printf("Model:     %s\n", spec.Config.Model)
	fmt.Printf("Dataset:   %s\n", spec.Config.DatasetPath)
	fmt.Printf("Timestamp: %s\n", spec.Config.Timestamp)
	fmt.Println()

	fmt.Printf("Category Accuracy: %.2f%%\n", spec.Summary.CategoryAccuracy*100)
	fmt.Printf("Tag Precision:     %.2f%%\n", spec.Summary.AvgTagPrecision*100)
	fmt.Printf("Tag Recall:        %.2f%%\n", spec.Summary.AvgTagRecall*100)
	fmt.Printf("Tag F1:            %.2f%%\n", spec.Summary.AvgTagF1*100)
	fmt.Printf("Fallback Records:  %d\n", spec.Summary.FallbackCount)
	fmt.Printf("Failures:          %d\n", spec.Summary.FailureCount)

	// Worst performers first so they're easy to triage
	sorted := make([]results.EvalResult, len(spec.Results))
	copy(sorted, spec.Results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TagF1 < sorted[j].TagF1
	})

	fmt.Println("\nDetailed Results (worst tag F1 first):")
	fmt.Println("========================================")
	for i, result := range sorted {
		fmt.Printf("\n[%d] %s\n", i+1, result.Identifier)

		if result.Error != "" {
			fmt.Printf("  Error: %s\n", result.Error)
			continue
		}

		marker := "✓"
		if !result.CategoryMatch {
			marker = "✗"
		}
		fmt.Printf("  Category: %s expected=%s actual=%s\n", marker, result.ExpectedCategory, result.ActualCategory)
		if !result.CategoryValid {
			fmt.Printf("  Category is outside the allowed enumeration\n")
		}
		fmt.Printf("  Tags: precision=%.2f recall=%.2f f1=%.2f\n", result.TagPrecision, result.TagRecall, result.TagF1)
		if len(result.TagsMissing) > 0 {
			fmt.Printf("  Missing Tags: %v\n", result.TagsMissing)
		}
		if len(result.TagsExtra) > 0 {
			fmt.Printf("  Extra Tags: %v\n", result.TagsExtra)
		}
	}

	return nil
}
