package article

import (
	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
)

// Optional distinguishes an absent field from a present zero value.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// CategoryInput references categories for an article write.
type CategoryInput struct {
	IDs   []string // existing categories, linked by ID
	Names []string // linked by name, created when absent
}

// Empty reports whether no category is referenced.
func (c CategoryInput) Empty() bool {
	return len(c.IDs) == 0 && len(c.Names) == 0
}

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title       string
	Description string
	Type        entity.ArticleType
	Categories  CategoryInput
}

// UpdateInput represents the input parameters for updating an existing article.
// Nil scalar fields are left untouched. Categories follows replace semantics:
// unset leaves the set alone, set and empty detaches everything,
// set and non-empty makes the set exactly the referenced categories.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Type        *entity.ArticleType
	Categories  Optional[CategoryInput]
}

// ListInput selects one page of articles.
type ListInput struct {
	Params     pagination.Params
	CategoryID string // Optional: only articles linked to this category
}

// PaginatedResult represents the result of a paginated query.
// It contains both the data and pagination metadata.
type PaginatedResult struct {
	Data []*entity.Article
	Meta pagination.Metadata
}

// BulkDeleteResult reports a completed bulk delete.
type BulkDeleteResult struct {
	Count int64
}

// BulkAssignResult reports a completed bulk category assignment.
type BulkAssignResult struct {
	Count   int64
	Message string
}
