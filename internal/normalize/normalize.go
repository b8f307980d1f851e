package normalize

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jewelrender/jewelrender/internal/models"
)

// Normalize turns a model's free-form reply into a JewelryRecord. It never
// fails: when no usable JSON can be recovered from the reply it degrades to
// a fallback record derived from the image name, so the catalog pipeline
// stays available even when the model misbehaves.
func Normalize(raw, imageName string) models.JewelryRecord {
	record, ok := parseReply(raw)
	if !ok {
		slog.Warn("Falling back to generic record", "image", imageName)
		record = models.JewelryRecord{
			Category:    models.CategoryUnknown,
			Tags:        []string{"jewelry", FirstSegment(imageName)},
			Description: "Jewelry item",
		}
	}

	record.Tags = CanonicalTags(record.Tags)
	return record
}

func parseReply(raw string) (models.JewelryRecord, bool) {
	span, ok := ExtractJSON(raw)
	if !ok {
		return models.JewelryRecord{}, false
	}

	// Pointers so a missing field is distinguishable from an empty one
	var parsed struct {
		Category    *string   `json:"category"`
		Tags        *[]string `json:"tags"`
		Description *string   `json:"description"`
	}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		slog.Warn("Failed to parse model reply as JSON", "error", err)
		return models.JewelryRecord{}, false
	}
	if parsed.Category == nil || parsed.Tags == nil || parsed.Description == nil {
		return models.JewelryRecord{}, false
	}

	// Category is passed through unvalidated, matching the behavior catalog
	// clients already depend on. See DESIGN.md.
	return models.JewelryRecord{
		Category:    *parsed.Category,
		Tags:        *parsed.Tags,
		Description: *parsed.Description,
	}, true
}

// ExtractJSON locates the JSON object embedded in a model reply. Markdown
// code fences are stripped first, then the span from the first "{" to the
// last "}" is taken greedily. The greedy match tolerates prose around the
// object but mis-extracts replies containing two separate JSON objects; that
// limitation is kept intact behind this function so a delimiter-aware parser
// can replace it without touching callers.
func ExtractJSON(raw string) (string, bool) {
	raw = StripCodeFences(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// StripCodeFences removes a surrounding markdown code block, if any
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CanonicalTags lower-cases every tag and drops duplicates, keeping
// first-occurrence order.
func CanonicalTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// FirstSegment returns the text before the first "." in name, so
// "ring-5.jpg" becomes "ring-5". A name without a "." is returned whole.
func FirstSegment(name string) string {
	if idx := strings.Index(name, "."); idx != -1 {
		return name[:idx]
	}
	return name
}
