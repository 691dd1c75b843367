package category

import (
	"time"

	"content-api/internal/domain/entity"
)

// DTO is the JSON representation of a category with the articles linked to it.
type DTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Articles  []ArticleRefDTO `json:"articles"`
}

// ArticleRefDTO is an article as referenced from a category.
type ArticleRefDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DeleteDTO is the response of DELETE /categories/{id}.
type DeleteDTO struct {
	Message          string          `json:"message"`
	Category         SummaryDTO      `json:"category"`
	AffectedArticles []ArticleRefDTO `json:"affectedArticles"`
}

// SummaryDTO identifies a deleted category.
type SummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toDTO(c *entity.Category) DTO {
	return DTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Articles:  toRefs(c.Articles),
	}
}

func toRefs(refs []entity.ArticleRef) []ArticleRefDTO {
	out := make([]ArticleRefDTO, 0, len(refs))
	for _, r := range refs {
		out = append(out, ArticleRefDTO{ID: r.ID, Title: r.Title})
	}
	return out
}
