package repository

import (
	"context"

	"content-api/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// Get returns (nil, nil) if the comment does not exist.
	Get(ctx context.Context, id string) (*entity.Comment, error)
	// ListByArticle returns the comments of one article ordered by created_at DESC.
	ListByArticle(ctx context.Context, articleID string) ([]entity.Comment, error)
	// Update writes the text only; the owning article never changes.
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
