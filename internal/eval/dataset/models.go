package dataset

import "strings"

// LabeledImage is one row of a jewelry evaluation dataset: an image URL plus
// the category and tags a human cataloger assigned to it.
type LabeledImage struct {
	ImageURL  string   `json:"image_url" parquet:"image_url"`
	ImageName string   `json:"image_name" parquet:"image_name"`
	Category  string   `json:"category" parquet:"category"`
	Tags      []string `json:"tags" parquet:"tags,list"`
}

// DisplayName returns the labeled name, falling back to the last path
// segment of the URL when the dataset omits one
func (r *LabeledImage) DisplayName() string {
	if r.ImageName != "" {
		return r.ImageName
	}
	url := strings.TrimSuffix(r.ImageURL, "/")
	if idx := strings.LastIndex(url, "/"); idx != -1 {
		return url[idx+1:]
	}
	return url
}
