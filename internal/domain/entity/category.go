package entity

import "time"

// Category is a named label that can be attached to many articles.
// Name is globally unique.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time

	// Articles is the back-reference set, filled only by category reads.
	Articles []ArticleRef
}

// ArticleRef is the minimal projection of an article referenced from a category.
type ArticleRef struct {
	ID    string
	Title string
}
