package entity

import "time"

// Comment is owned by exactly one article. ArticleID never changes after creation.
type Comment struct {
	ID        string
	Text      string
	ArticleID string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Article is the owning article's projection, filled by comment reads.
	Article *ArticleRef
}
