// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Category and Comment, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// ArticleType classifies an article by its length.
type ArticleType string

const (
	ArticleTypeLong  ArticleType = "long"
	ArticleTypeShort ArticleType = "short"
)

// Valid reports whether t is one of the known article types.
func (t ArticleType) Valid() bool {
	return t == ArticleTypeLong || t == ArticleTypeShort
}

// Article represents an article entity in the system.
// Categories and Comments are populated by the read path only;
// Comments is always nil on list results.
type Article struct {
	ID          string
	Title       string
	Description string
	Type        ArticleType
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categories []Category
	Comments   []Comment
}

// CategoryIDs returns the IDs of the article's categories in their current order.
func (a *Article) CategoryIDs() []string {
	ids := make([]string, 0, len(a.Categories))
	for _, c := range a.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
