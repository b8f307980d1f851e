package metrics

import (
	"testing"
	"time"

	"github.com/jewelrender/jewelrender/internal/models"
)

func TestCompareRecords(t *testing.T) {
	tests := []struct {
		name          string
		expectedCat   string
		expectedTags  []string
		actual        models.JewelryRecord
		wantMatch     bool
		wantValid     bool
		wantPrecision float64
		wantRecall    float64
	}{
		{
			name:         "perfect match",
			expectedCat:  "ring",
			expectedTags: []string{"diamond", "solitaire"},
			actual: models.JewelryRecord{
				Category: "ring",
				Tags:     []string{"diamond", "solitaire"},
			},
			wantMatch:     true,
			wantValid:     true,
			wantPrecision: 1.0,
			wantRecall:    1.0,
		},
		{
			name:         "case differences ignored",
			expectedCat:  "Ring",
			expectedTags: []string{"Diamond"},
			actual: models.JewelryRecord{
				Category: "ring",
				Tags:     []string{"DIAMOND"},
			},
			wantMatch:     true,
			wantValid:     true,
			wantPrecision: 1.0,
			wantRecall:    1.0,
		},
		{
			name:         "partial tag overlap",
			expectedCat:  "necklace",
			expectedTags: []string{"pearl", "vintage", "silver", "clasp"},
			actual: models.JewelryRecord{
				Category: "necklace",
				Tags:     []string{"pearl", "vintage"},
			},
			wantMatch:     true,
			wantValid:     true,
			wantPrecision: 1.0,
			wantRecall:    0.5,
		},
		{
			name:         "wrong category outside enumeration",
			expectedCat:  "brooch",
			expectedTags: []string{"gold"},
			actual: models.JewelryRecord{
				Category: "tiara",
				Tags:     []string{"gold", "crystal"},
			},
			wantMatch:     false,
			wantValid:     false,
			wantPrecision: 0.5,
			wantRecall:    1.0,
		},
		{
			name:         "no tags generated",
			expectedCat:  "ring",
			expectedTags: []string{"diamond"},
			actual: models.JewelryRecord{
				Category: "ring",
				Tags:     []string{},
			},
			wantMatch:     true,
			wantValid:     true,
			wantPrecision: 0,
			wantRecall:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := CompareRecords(tt.expectedCat, tt.expectedTags, tt.actual)

			if comparison.CategoryMatch != tt.wantMatch {
				t.Errorf("CategoryMatch = %v, want %v", comparison.CategoryMatch, tt.wantMatch)
			}
			if comparison.CategoryValid != tt.wantValid {
				t.Errorf("CategoryValid = %v, want %v", comparison.CategoryValid, tt.wantValid)
			}
			if comparison.TagPrecision != tt.wantPrecision {
				t.Errorf("TagPrecision = %.2f, want %.2f", comparison.TagPrecision, tt.wantPrecision)
			}
			if comparison.TagRecall != tt.wantRecall {
				t.Errorf("TagRecall = %.2f, want %.2f", comparison.TagRecall, tt.wantRecall)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	results := []EvaluationResult{
		{
			Identifier: "ring-1.jpg",
			Generated:  models.JewelryRecord{Category: "ring", Tags: []string{"diamond"}},
			Comparison: CompareRecords("ring", []string{"diamond"},
				models.JewelryRecord{Category: "ring", Tags: []string{"diamond"}}),
			ProcessingTime: 2 * time.Second,
		},
		{
			Identifier: "necklace-1.jpg",
			Generated:  models.JewelryRecord{Category: "unknown", Tags: []string{"jewelry", "necklace-1"}},
			Comparison: CompareRecords("necklace", []string{"pearl"},
				models.JewelryRecord{Category: "unknown", Tags: []string{"jewelry", "necklace-1"}}),
			ProcessingTime: 1 * time.Second,
		},
		{
			Identifier: "broken.jpg",
			Error:      "image not accessible",
		},
	}

	agg := Aggregate(results, "anthropic", "claude-3-5-sonnet-20241022")

	if agg.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", agg.TotalRecords)
	}
	if agg.SuccessCount != 2 || agg.FailureCount != 1 {
		t.Errorf("Success/Failure = %d/%d, want 2/1", agg.SuccessCount, agg.FailureCount)
	}
	if agg.CategoryAccuracy != 0.5 {
		t.Errorf("CategoryAccuracy = %.2f, want 0.5", agg.CategoryAccuracy)
	}
	if agg.FallbackCount != 1 {
		t.Errorf("FallbackCount = %d, want 1", agg.FallbackCount)
	}
	if agg.AverageProcessingTime != 1500*time.Millisecond {
		t.Errorf("AverageProcessingTime = %s, want 1.5s", agg.AverageProcessingTime)
	}
	if agg.Provider != "anthropic" {
		t.Errorf("Provider = %q", agg.Provider)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, "anthropic", "m")
	if agg.TotalRecords != 0 || agg.CategoryAccuracy != 0 {
		t.Errorf("Unexpected aggregate for empty results: %+v", agg)
	}
}
