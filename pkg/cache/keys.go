package cache

import "sort"

// ElementsKeyOpts are the build parameters that distinguish one diagram
// payload from another. Categories must reflect the filter exactly:
// Filtered=false with nil Categories is the unfiltered build, Filtered=true
// with empty Categories is the center-only build.
type ElementsKeyOpts struct {
	Focal      string   `json:"focal"`
	Locale     string   `json:"locale,omitempty"`
	Filtered   bool     `json:"filtered"`
	Categories []string `json:"categories,omitempty"`
}

// ElementsKey generates the cache key for a built diagram payload.
// The dataset hash ties the key to the loaded dataset snapshot; categories
// are sorted so equivalent selections share a key.
func ElementsKey(datasetHash string, opts ElementsKeyOpts) string {
	if opts.Categories != nil {
		sorted := make([]string, len(opts.Categories))
		copy(sorted, opts.Categories)
		sort.Strings(sorted)
		opts.Categories = sorted
	}
	return hashKey("elements", datasetHash, opts)
}

// ImageKey generates the cache key for proxied image bytes.
func ImageKey(url string) string {
	return hashKey("image", url)
}
