package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Literal routes that share a prefix with an ID route come first.
var pathPatterns = []*PathPattern{
	// Bulk article routes
	{Pattern: regexp.MustCompile(`^/articles/bulk$`), Template: "/articles/bulk"},
	{Pattern: regexp.MustCompile(`^/articles/bulk-assign-articles$`), Template: "/articles/bulk-assign-articles"},

	// Article routes with IDs
	{Pattern: regexp.MustCompile(`^/articles/[^/]+$`), Template: "/articles/:id"},
	{Pattern: regexp.MustCompile(`^/articles/[^/]+/comments$`), Template: "/articles/:id/comments"},

	// Category and comment routes with IDs
	{Pattern: regexp.MustCompile(`^/categories/[^/]+$`), Template: "/categories/:id"},
	{Pattern: regexp.MustCompile(`^/comments/[^/]+$`), Template: "/comments/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /articles/<uuid>) to template format (e.g., /articles/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/articles/0b6c1d1e-5f0a-4c1e-9d43-0f3a2b1c9e77")  // "/articles/:id"
//	NormalizePath("/articles/bulk")                                  // "/articles/bulk"
//	NormalizePath("/categories/0b6c1d1e-5f0a-4c1e-9d43-0f3a2b1c9e77") // "/categories/:id"
//	NormalizePath("/health")                                         // "/health" (unchanged)
//	NormalizePath("/unknown/path/123")                               // "/unknown/path/123"
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/comments/abc?x=1")  // "/comments/:id"
//	NormalizePath("/comments/abc/")     // "/comments/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization.
//
//   - Static endpoints: /articles, /categories, /comments, /health, /ready, /live, /metrics
//   - Template endpoints: one per entry in pathPatterns
func GetExpectedCardinality() int {
	staticCount := 7
	return len(pathPatterns) + staticCount
}
