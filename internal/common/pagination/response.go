package pagination

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., ArticleDTO).
//
// Example usage:
//
//	response := pagination.NewResponse(articles, metadata)
//	// response is of type pagination.Response[ArticleDTO]
type Response[T any] struct {
	Data []T     `json:"data"` // Array of data items for the current page
	Meta Metadata `json:"meta"` // Pagination metadata (total, page, limit, etc.)
}

// NewResponse creates a new paginated response with data and metadata.
// A nil data slice is encoded as an empty JSON array.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data: data,
		Meta: metadata,
	}
}
