package repository

import "context"

// AssociationRepository manages the article_categories join table.
type AssociationRepository interface {
	// CategoryIDs returns the categories currently linked to an article.
	CategoryIDs(ctx context.Context, articleID string) ([]string, error)
	// Link adds (articleID, categoryID) pairs; existing pairs are left alone.
	Link(ctx context.Context, articleID string, categoryIDs []string) (int64, error)
	// Unlink removes the listed pairs and returns the number removed.
	Unlink(ctx context.Context, articleID string, categoryIDs []string) (int64, error)
	// LinkArticles adds every article to one category; existing pairs are left alone.
	LinkArticles(ctx context.Context, categoryID string, articleIDs []string) (int64, error)
}
