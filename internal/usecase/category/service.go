package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new category.
type CreateInput struct {
	Name string
}

// UpdateInput represents the input parameters for updating an existing category.
// A nil Name leaves the category unchanged.
type UpdateInput struct {
	ID   string
	Name *string
}

// DeleteResult describes a removed category and the articles that lost it.
type DeleteResult struct {
	Category         *entity.Category
	AffectedArticles []entity.ArticleRef
}

// Service provides category management use cases.
// Deleting a category only detaches it from its articles; articles are never removed.
type Service struct {
	Repo repository.CategoryRepository
	Tx   repository.Transactor
}

// Create creates a new category. A duplicate name is a Conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := entity.ValidateCategoryName(name); err != nil {
		return nil, err
	}

	cat := &entity.Category{Name: name}
	if err := s.Repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	metrics.RecordCategoryCreated("explicit")
	logging.FromContext(ctx).Info("category created",
		slog.String("category_id", cat.ID),
		slog.String("name", cat.Name))
	return cat, nil
}

// List returns every category, newest first, each with the articles linked to it.
func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	cats, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) == 0 {
		return cats, nil
	}

	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	refs, err := s.Repo.ArticleRefs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		c.Articles = refs[c.ID]
	}
	return cats, nil
}

// Get retrieves a single category with its linked articles.
// Returns a NotFound error if the category does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Category, error) {
	if err := entity.ValidateID("id", id); err != nil {
		return nil, err
	}

	cat, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat == nil {
		return nil, entity.NotFound("get category", "category", id)
	}

	refs, err := s.Repo.ArticleRefs(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	cat.Articles = refs[id]
	return cat, nil
}

// Update renames a category. Renaming onto a taken name is a Conflict.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Category, error) {
	cat, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name == nil {
		return cat, nil
	}

	name := strings.TrimSpace(*in.Name)
	if err := entity.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	cat.Name = name

	if err := s.Repo.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// Delete removes a category and its associations in one transaction.
func (s *Service) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	var res DeleteResult
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		cat, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		res = DeleteResult{Category: cat, AffectedArticles: cat.Articles}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("category deleted",
		slog.String("category_id", id),
		slog.Int("affected_articles", len(res.AffectedArticles)))
	return &res, nil
}
