package comment

import (
	"time"

	"content-api/internal/domain/entity"
)

// DTO is the JSON representation of a comment.
type DTO struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	ArticleID string         `json:"articleId"`
	Article   *ArticleRefDTO `json:"article,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ArticleRefDTO is the owning article of a comment.
type ArticleRefDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func toDTO(c *entity.Comment) DTO {
	out := DTO{
		ID:        c.ID,
		Text:      c.Text,
		ArticleID: c.ArticleID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Article != nil {
		out.Article = &ArticleRefDTO{ID: c.Article.ID, Title: c.Article.Title}
	}
	return out
}
