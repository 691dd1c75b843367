package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Sort orders accepted by the planner.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params represents raw pagination query parameters from an HTTP request.
// Zero values mean "not supplied"; Plan fills in defaults.
type Params struct {
	Page      int    // 1-based page number
	Limit     int    // Items per page
	SortBy    string // Field name; empty means the collection default ordering
	SortOrder string // "asc" or "desc"
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Out-of-range numbers are accepted here and clamped later by Plan;
// only values that are not integers, or an unknown sort order, are rejected.
//
// Query parameters:
//   - page: Page number
//   - limit: Items per page
//   - sortBy: Field to order by
//   - sortOrder: "asc" or "desc"
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	q := r.URL.Query()
	var params Params

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: page must be an integer")
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: limit must be an integer between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	params.SortBy = strings.TrimSpace(q.Get("sortBy"))

	if order := strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))); order != "" {
		if order != SortAsc && order != SortDesc {
			return params, fmt.Errorf("invalid query parameter: sortOrder must be %q or %q", SortAsc, SortDesc)
		}
		params.SortOrder = order
	}

	return params, nil
}
