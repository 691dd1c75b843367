// Package comment provides use cases for the comments attached to articles.
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new comment.
type CreateInput struct {
	ArticleID string
	Text      string
}

// UpdateInput represents the input parameters for updating a comment.
// The owning article cannot be changed; a nil Text leaves the comment unchanged.
type UpdateInput struct {
	ID   string
	Text *string
}

// Service provides comment management use cases.
type Service struct {
	Repo     repository.CommentRepository
	Articles repository.ArticleRepository
}

// Create adds a comment to an existing article.
// Returns a NotFound error if the article does not exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Comment, error) {
	if err := entity.ValidateID("articleId", in.ArticleID); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if err := entity.ValidateCommentText(text); err != nil {
		return nil, err
	}

	art, err := s.article(ctx, "create comment", in.ArticleID)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{Text: text, ArticleID: art.ID}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.Article = &entity.ArticleRef{ID: art.ID, Title: art.Title}

	logging.FromContext(ctx).Info("comment created",
		slog.String("comment_id", c.ID),
		slog.String("article_id", c.ArticleID))
	return c, nil
}

// ListByArticle returns the comments of an article, newest first.
func (s *Service) ListByArticle(ctx context.Context, articleID string) ([]entity.Comment, error) {
	if err := entity.ValidateID("articleId", articleID); err != nil {
		return nil, err
	}
	art, err := s.article(ctx, "list comments", articleID)
	if err != nil {
		return nil, err
	}

	comments, err := s.Repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	ref := &entity.ArticleRef{ID: art.ID, Title: art.Title}
	for i := range comments {
		comments[i].Article = ref
	}
	return comments, nil
}

// Get retrieves a single comment with its article reference.
func (s *Service) Get(ctx context.Context, id string) (*entity.Comment, error) {
	if err := entity.ValidateID("id", id); err != nil {
		return nil, err
	}
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, entity.NotFound("get comment", "comment", id)
	}
	return c, nil
}

// Update rewrites the text of a comment.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Comment, error) {
	c, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Text == nil {
		return c, nil
	}

	text := strings.TrimSpace(*in.Text)
	if err := entity.ValidateCommentText(text); err != nil {
		return nil, err
	}
	c.Text = text
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment and returns it.
func (s *Service) Delete(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	logging.FromContext(ctx).Info("comment deleted", slog.String("comment_id", id))
	return c, nil
}

func (s *Service) article(ctx context.Context, op, id string) (*entity.Article, error) {
	art, err := s.Articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if art == nil {
		return nil, entity.NotFound(op, "article", id)
	}
	return art, nil
}
