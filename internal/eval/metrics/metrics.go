package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/jewelrender/jewelrender/internal/normalize"
)

// RecordComparison scores one generated JewelryRecord against its label
type RecordComparison struct {
	ExpectedCategory string
	ActualCategory   string
	CategoryMatch    bool
	CategoryValid    bool

	TagPrecision float64
	TagRecall    float64
	TagF1        float64

	TagsMatched []string
	TagsMissing []string
	TagsExtra   []string
}

// EvaluationResult represents the outcome for a single labeled image
type EvaluationResult struct {
	Identifier     string
	Generated      models.JewelryRecord
	Comparison     *RecordComparison
	ProcessingTime time.Duration
	Error          string // If analysis failed
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	CategoryAccuracy  float64
	InvalidCategories int
	FallbackCount     int

	AvgTagPrecision float64
	AvgTagRecall    float64
	AvgTagF1        float64

	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	Results []EvaluationResult

	EvaluationDate time.Time
	Provider       string
	Model          string
	SampleSize     int
}

// CompareRecords scores a generated record against the labeled category and
// tags. Both sides are canonicalized the same way the analyze path
// canonicalizes model output, so casing and duplicate labels never skew the
// score.
func CompareRecords(expectedCategory string, expectedTags []string, actual models.JewelryRecord) *RecordComparison {
	comparison := &RecordComparison{
		ExpectedCategory: expectedCategory,
		ActualCategory:   actual.Category,
		CategoryMatch:    strings.EqualFold(expectedCategory, actual.Category),
		CategoryValid:    models.ValidCategory(actual.Category),
	}

	expected := normalize.CanonicalTags(expectedTags)
	got := normalize.CanonicalTags(actual.Tags)

	expectedSet := make(map[string]bool, len(expected))
	for _, tag := range expected {
		expectedSet[tag] = true
	}
	gotSet := make(map[string]bool, len(got))
	for _, tag := range got {
		gotSet[tag] = true
	}

	for _, tag := range got {
		if expectedSet[tag] {
			comparison.TagsMatched = append(comparison.TagsMatched, tag)
		} else {
			comparison.TagsExtra = append(comparison.TagsExtra, tag)
		}
	}
	for _, tag := range expected {
		if !gotSet[tag] {
			comparison.TagsMissing = append(comparison.TagsMissing, tag)
		}
	}

	matched := float64(len(comparison.TagsMatched))
	if len(got) > 0 {
		comparison.TagPrecision = matched / float64(len(got))
	}
	if len(expected) > 0 {
		comparison.TagRecall = matched / float64(len(expected))
	}
	if comparison.TagPrecision+comparison.TagRecall > 0 {
		comparison.TagF1 = 2 * comparison.TagPrecision * comparison.TagRecall /
			(comparison.TagPrecision + comparison.TagRecall)
	}

	return comparison
}

// Aggregate combines per-image results into run-level metrics
func Aggregate(results []EvaluationResult, provider, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		Provider:       provider,
		Model:          model,
		SampleSize:     len(results),
	}

	categoryMatches := 0
	totalPrecision := 0.0
	totalRecall := 0.0
	totalF1 := 0.0
	var successDuration time.Duration

	for _, result := range results {
		agg.TotalProcessingTime += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Generated.Category == models.CategoryUnknown {
			agg.FallbackCount++
		}

		if result.Comparison == nil {
			continue
		}
		if result.Comparison.CategoryMatch {
			categoryMatches++
		}
		if !result.Comparison.CategoryValid {
			agg.InvalidCategories++
		}
		totalPrecision += result.Comparison.TagPrecision
		totalRecall += result.Comparison.TagRecall
		totalF1 += result.Comparison.TagF1
	}

	if agg.SuccessCount > 0 {
		n := float64(agg.SuccessCount)
		agg.CategoryAccuracy = float64(categoryMatches) / n
		agg.AvgTagPrecision = totalPrecision / n
		agg.AvgTagRecall = totalRecall / n
		agg.AvgTagF1 = totalF1 / n
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	return agg
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("JEWELRY CLASSIFICATION EVALUATION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Provider: %s\n", a.Provider)
	fmt.Printf("Model: %s\n", a.Model)
	fmt.Printf("Sample Size: %d images\n", a.SampleSize)
	fmt.Println()

	fmt.Println("PROCESSING STATISTICS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Total Images: %d\n", a.TotalRecords)
	if a.TotalRecords > 0 {
		fmt.Printf("Successful: %d (%.1f%%)\n", a.SuccessCount, float64(a.SuccessCount)/float64(a.TotalRecords)*100)
		fmt.Printf("Failed: %d (%.1f%%)\n", a.FailureCount, float64(a.FailureCount)/float64(a.TotalRecords)*100)
	}
	fmt.Printf("Fell back to generic record: %d\n", a.FallbackCount)
	fmt.Printf("Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Printf("Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Println()

	fmt.Println("CLASSIFICATION ACCURACY")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Category Accuracy: %.2f%%\n", a.CategoryAccuracy*100)
	fmt.Printf("Categories Outside Enumeration: %d\n", a.InvalidCategories)
	fmt.Printf("Tag Precision: %.2f%%\n", a.AvgTagPrecision*100)
	fmt.Printf("Tag Recall: %.2f%%\n", a.AvgTagRecall*100)
	fmt.Printf("Tag F1: %.2f%%\n", a.AvgTagF1*100)
	fmt.Println(strings.Repeat("=", 70))
}
