// Package fixtures provides reusable test data builders and an in-memory
// store implementing the repository ports, shared by the usecase and handler tests.
package fixtures

import (
	"strings"
	"time"

	"content-api/internal/domain/entity"
)

// ArticleOption is a functional option for customizing test articles.
type ArticleOption func(*entity.Article)

// NewTestArticle creates a valid Article with sensible defaults.
// Use functional options to customize the article for specific test cases.
//
// Example:
//
//	a := NewTestArticle()
//	a := NewTestArticle(WithID("..."), WithType(entity.ArticleTypeShort))
func NewTestArticle(opts ...ArticleOption) *entity.Article {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &entity.Article{
		ID:          "3f0c8f8e-5d1a-4a5e-9d55-000000000001",
		Title:       "Go concurrency patterns",
		Description: GenerateText(120),
		Type:        entity.ArticleTypeLong,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithID sets the article ID.
func WithID(id string) ArticleOption {
	return func(a *entity.Article) { a.ID = id }
}

// WithTitle sets the article title.
func WithTitle(title string) ArticleOption {
	return func(a *entity.Article) { a.Title = title }
}

// WithType sets the article type.
func WithType(t entity.ArticleType) ArticleOption {
	return func(a *entity.Article) { a.Type = t }
}

// WithCategories sets the categories of the article.
func WithCategories(cats ...entity.Category) ArticleOption {
	return func(a *entity.Article) { a.Categories = cats }
}

// WithCreatedAt sets both timestamps.
func WithCreatedAt(t time.Time) ArticleOption {
	return func(a *entity.Article) {
		a.CreatedAt = t
		a.UpdatedAt = t
	}
}

// GenerateText returns English prose of exactly n characters.
// Useful for hitting the title and description length bounds.
func GenerateText(n int) string {
	if n <= 0 {
		return ""
	}
	sentences := []string{
		"Goroutines make concurrent programs cheap to write.",
		"Channels carry values between goroutines.",
		"A context carries deadlines and cancellation across API boundaries.",
		"Interfaces are satisfied implicitly.",
		"Errors are values and are returned explicitly.",
		"The standard library ships a production ready HTTP server.",
	}

	var b strings.Builder
	for i := 0; len([]rune(b.String())) < n; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sentences[i%len(sentences)])
	}
	return string([]rune(b.String())[:n])
}
