package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total           int64 `json:"total"`           // Total number of items across all pages
	Page            int   `json:"page"`            // Current page number (1-based)
	Limit           int   `json:"limit"`           // Items per page
	TotalPages      int   `json:"totalPages"`      // Calculated total number of pages
	HasNextPage     bool  `json:"hasNextPage"`     // page < totalPages
	HasPreviousPage bool  `json:"hasPreviousPage"` // page > 1
}

// NewMetadata builds metadata for a page of a collection holding total items.
func NewMetadata(total int64, page, limit int) Metadata {
	totalPages := CalculateTotalPages(total, limit)
	return Metadata{
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
