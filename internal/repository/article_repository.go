package repository

import (
	"context"

	"content-api/internal/domain/entity"
)

// ArticleFilter narrows List and Count. Zero value matches every article.
type ArticleFilter struct {
	CategoryID string // Optional: only articles linked to this category
}

// ArticleQuery describes one page of articles.
type ArticleQuery struct {
	Filter     ArticleFilter
	Offset     int
	Limit      int
	SortBy     string // one of ArticleSortFields; empty means createdAt
	Descending bool
}

// ArticleSortFields is the whitelist of accepted sortBy values.
var ArticleSortFields = []string{"createdAt", "updatedAt", "title", "type"}

// IsArticleSortField reports whether field may be used as sortBy.
// The empty string selects the default ordering and is accepted.
func IsArticleSortField(field string) bool {
	if field == "" {
		return true
	}
	for _, f := range ArticleSortFields {
		if f == field {
			return true
		}
	}
	return false
}

type ArticleRepository interface {
	// Create inserts the article and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, article *entity.Article) error
	// Get returns (nil, nil) if the article does not exist.
	Get(ctx context.Context, id string) (*entity.Article, error)
	// List returns one page of articles without relations.
	List(ctx context.Context, q ArticleQuery) ([]*entity.Article, error)
	// Count returns the number of articles matching the filter.
	Count(ctx context.Context, filter ArticleFilter) (int64, error)
	// Update writes title, description and type and refreshes UpdatedAt.
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id string) error
	// DeleteMany removes every listed article and returns the number of rows removed.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// ExistingIDs returns the subset of ids present in the store, in one round trip.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}
