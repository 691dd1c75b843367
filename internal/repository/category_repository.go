package repository

import (
	"context"

	"content-api/internal/domain/entity"
)

type CategoryRepository interface {
	// Create inserts a category; a duplicate name surfaces as a Conflict.
	Create(ctx context.Context, category *entity.Category) error
	// Get returns (nil, nil) if the category does not exist.
	Get(ctx context.Context, id string) (*entity.Category, error)
	// List returns every category ordered by created_at DESC.
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// FindByName returns (nil, nil) if no category carries the name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	// InsertIfAbsent inserts a category unless the name is already taken.
	// created is false when another writer owns the name; id is then empty.
	InsertIfAbsent(ctx context.Context, name string) (id string, created bool, err error)
	// ExistingIDs returns the subset of ids present in the store, in one round trip.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)

	// ListByArticle returns the categories of one article ordered by created_at DESC.
	ListByArticle(ctx context.Context, articleID string) ([]entity.Category, error)
	// ListByArticles batches ListByArticle for a page of articles.
	ListByArticles(ctx context.Context, articleIDs []string) (map[string][]entity.Category, error)
	// ArticleRefs returns {id, title} of the articles linked to each category.
	ArticleRefs(ctx context.Context, categoryIDs []string) (map[string][]entity.ArticleRef, error)
}
