package models

import "encoding/json"

// AnalysisRequest is the payload for a single image classification call
type AnalysisRequest struct {
	ImageURL  string `json:"imageUrl"`
	ImageName string `json:"imageName"`
	UserID    string `json:"userId"`
}

// JewelryRecord is the normalized classification result for one image
type JewelryRecord struct {
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// CatalogSnapshot is the stored state for one user's catalog at last publish time.
// Catalog entries and FolderInfo are caller-supplied and kept opaque so a
// publish/get round trip returns exactly what was submitted.
type CatalogSnapshot struct {
	Catalog        []json.RawMessage `json:"catalog"`
	TotalImages    int               `json:"totalImages"`
	AnalyzedImages int               `json:"analyzedImages"`
	PublishedAt    string            `json:"publishedAt"`
	FolderInfo     json.RawMessage   `json:"folderInfo,omitempty"`
	LastUpdated    string            `json:"lastUpdated"`
}

// CategoryUnknown is the sentinel category used when classification fails
const CategoryUnknown = "unknown"

// Categories is the closed set of jewelry categories the classifier may assign
var Categories = []string{
	"ring",
	"earring",
	"necklace",
	"pendant",
	"bracelet",
	"brooch",
	"anklet",
}

// ValidCategory reports whether c is one of the allowed categories or the
// unknown sentinel. The analyze path deliberately does not enforce this on
// model output; it exists for callers and the eval tooling.
func ValidCategory(c string) bool {
	if c == CategoryUnknown {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
