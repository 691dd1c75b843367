package article

import (
	"time"

	"content-api/internal/domain/entity"
)

// DTO is the JSON representation of an article.
// Comments is omitted from list responses.
type DTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Categories  []CategoryDTO `json:"categories"`
	Comments    []CommentDTO  `json:"comments,omitempty"`
}

// CategoryDTO is a category as embedded in an article.
type CategoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentDTO is a comment as embedded in an article.
type CommentDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BulkDeleteDTO is the response of DELETE /articles/bulk.
type BulkDeleteDTO struct {
	Count int64 `json:"count"`
}

// BulkAssignDTO is the response of PUT /articles/bulk-assign-articles.
type BulkAssignDTO struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// categoryRequest names a category to link, created when absent.
type categoryRequest struct {
	Name string `json:"name"`
}

func toDTO(a *entity.Article) DTO {
	out := DTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Type:        string(a.Type),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Categories:  make([]CategoryDTO, 0, len(a.Categories)),
	}
	for _, c := range a.Categories {
		out.Categories = append(out.Categories, CategoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	if a.Comments != nil {
		out.Comments = make([]CommentDTO, 0, len(a.Comments))
		for _, c := range a.Comments {
			out.Comments = append(out.Comments, CommentDTO{
				ID:        c.ID,
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
				UpdatedAt: c.UpdatedAt,
			})
		}
	}
	return out
}

func names(reqs []categoryRequest) []string {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]string, 0, len(reqs))
	for _, c := range reqs {
		out = append(out, c.Name)
	}
	return out
}
