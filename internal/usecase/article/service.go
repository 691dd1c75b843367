package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/metrics"
	"content-api/internal/observability/tracing"
	"content-api/internal/repository"
	"content-api/internal/usecase/category"
)

// Service provides article management use cases.
// Every write runs in one transaction together with its category reconciliation.
type Service struct {
	Repo       repository.ArticleRepository
	Categories repository.CategoryRepository
	Assoc      repository.AssociationRepository
	Comments   repository.CommentRepository
	Tx         repository.Transactor
	// Pagination falls back to pagination.DefaultConfig when zero.
	Pagination pagination.Config
}

func (s *Service) resolver() *category.Resolver {
	return &category.Resolver{Repo: s.Categories}
}

func (s *Service) reconciler() *Reconciler {
	return &Reconciler{Categories: s.Categories, Assoc: s.Assoc}
}

func (s *Service) bulk() *BulkCoordinator {
	return &BulkCoordinator{Articles: s.Repo, Categories: s.Categories, Assoc: s.Assoc, Tx: s.Tx}
}

// Create creates an article and links the referenced categories.
// Missing category IDs fail the whole write with a NotFound naming each of them.
func (s *Service) Create(ctx context.Context, in CreateInput) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.Create",
		attribute.Int("category_ids", len(in.Categories.IDs)),
		attribute.Int("category_names", len(in.Categories.Names)))
	defer func() { tracing.EndSpan(span, err) }()

	art := &entity.Article{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
	}
	if err := validateArticle(art); err != nil {
		return nil, err
	}

	rc := s.reconciler()
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		rc.Reset()
		plan, err := s.resolver().Resolve(ctx, in.Categories.IDs, in.Categories.Names)
		if err != nil {
			return err
		}
		if err := s.Repo.Create(ctx, art); err != nil {
			return fmt.Errorf("%s: %w", opCreate, err)
		}
		if err := rc.Attach(ctx, art.ID, plan); err != nil {
			return fmt.Errorf("%s: %w", opCreate, err)
		}
		cats, err := s.Categories.ListByArticle(ctx, art.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", opCreate, err)
		}
		art.Categories = cats
		return nil
	})
	if err != nil {
		return nil, err
	}

	rc.Tally().Publish()
	metrics.RecordArticleWrite("create")
	logging.FromContext(ctx).Info("article created",
		slog.String("article_id", art.ID),
		slog.Int("categories", len(art.Categories)))
	return art, nil
}

// List returns one page of articles, each with its categories.
// Count and page are fetched concurrently.
func (s *Service) List(ctx context.Context, in ListInput) (_ *PaginatedResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.List")
	defer func() { tracing.EndSpan(span, err) }()

	if !repository.IsArticleSortField(in.Params.SortBy) {
		return nil, &entity.ValidationError{
			Field:   "sortBy",
			Message: "must be one of " + strings.Join(repository.ArticleSortFields, ", "),
		}
	}
	if in.CategoryID != "" {
		if err := entity.ValidateID("categoryId", in.CategoryID); err != nil {
			return nil, err
		}
	}

	w := pagination.Plan(in.Params, s.Pagination.OrDefault())
	filter := repository.ArticleFilter{CategoryID: in.CategoryID}
	span.SetAttributes(attribute.Int("page", w.Page), attribute.Int("limit", w.Limit))

	var (
		total int64
		rows  []*entity.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Repo.Count(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		page, err := s.Repo.List(gctx, repository.ArticleQuery{
			Filter:     filter,
			Offset:     w.Skip,
			Limit:      w.Limit,
			SortBy:     w.SortBy,
			Descending: w.Descending(),
		})
		rows = page
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opList, err)
	}

	if len(rows) > 0 {
		ids := make([]string, 0, len(rows))
		for _, a := range rows {
			ids = append(ids, a.ID)
		}
		cats, err := s.Categories.ListByArticles(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opList, err)
		}
		for _, a := range rows {
			a.Categories = cats[a.ID]
		}
	}

	return &PaginatedResult{
		Data: rows,
		Meta: pagination.NewMetadata(total, w.Page, w.Limit),
	}, nil
}

// Get retrieves a single article with its categories and comments, newest first.
// Returns a NotFound error if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	return s.get(ctx, id, true)
}

// get loads the article and its relations. Inside a transaction the relation
// reads share one connection and must run sequentially.
func (s *Service) get(ctx context.Context, id string, concurrent bool) (*entity.Article, error) {
	if err := entity.ValidateID("id", id); err != nil {
		return nil, err
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGet, err)
	}
	if art == nil {
		return nil, entity.NotFound(opGet, "article", id)
	}

	loadCategories := func(ctx context.Context) error {
		cats, err := s.Categories.ListByArticle(ctx, id)
		art.Categories = cats
		return err
	}
	loadComments := func(ctx context.Context) error {
		comments, err := s.Comments.ListByArticle(ctx, id)
		art.Comments = comments
		return err
	}

	if !concurrent {
		if err := loadCategories(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", opGet, err)
		}
		if err := loadComments(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", opGet, err)
		}
		return art, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loadCategories(gctx) })
	g.Go(func() error { return loadComments(gctx) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opGet, err)
	}
	return art, nil
}

// Update modifies an existing article. A NotFound from the existence check
// is returned unchanged. When Categories is set the category set is replaced.
func (s *Service) Update(ctx context.Context, in UpdateInput) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.Update",
		attribute.String("article_id", in.ID),
		attribute.Bool("categories_set", in.Categories.Set))
	defer func() { tracing.EndSpan(span, err) }()

	var art *entity.Article
	var diff Diff
	rc := s.reconciler()
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		rc.Reset()
		current, err := s.get(ctx, in.ID, false)
		if err != nil {
			return err
		}
		if err := applyUpdate(current, in); err != nil {
			return err
		}
		if !in.hasChanges() {
			art = current
			return nil
		}

		if in.Categories.Set {
			plan, err := s.resolver().Resolve(ctx, in.Categories.Value.IDs, in.Categories.Value.Names)
			if err != nil {
				return err
			}
			if diff, err = rc.Replace(ctx, current.ID, plan); err != nil {
				return fmt.Errorf("%s: %w", opUpdate, err)
			}
		}
		if err := s.Repo.Update(ctx, current); err != nil {
			return fmt.Errorf("%s: %w", opUpdate, err)
		}
		if in.Categories.Set {
			cats, err := s.Categories.ListByArticle(ctx, current.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", opUpdate, err)
			}
			current.Categories = cats
		}
		art = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.hasChanges() {
		rc.Tally().Publish()
		metrics.RecordArticleWrite("update")
		logging.FromContext(ctx).Info("article updated",
			slog.String("article_id", art.ID),
			slog.Int("categories_added", len(diff.Added)),
			slog.Int("categories_removed", len(diff.Removed)))
	}
	return art, nil
}

// Delete removes an article and returns it as it was before deletion.
// Its comments and category links go with it; categories stay.
func (s *Service) Delete(ctx context.Context, id string) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.Delete", attribute.String("article_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	var art *entity.Article
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.get(ctx, id, false)
		if err != nil {
			return err
		}
		if err := s.Repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", opDelete, err)
		}
		art = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordArticleWrite("delete")
	logging.FromContext(ctx).Info("article deleted", slog.String("article_id", id))
	return art, nil
}

// RemoveBulk deletes every listed article, or none when any is missing.
func (s *Service) RemoveBulk(ctx context.Context, ids []string) (_ *BulkDeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.RemoveBulk", attribute.Int("ids", len(ids)))
	defer func() { tracing.EndSpan(span, err) }()
	defer func(start time.Time) { metrics.RecordOperationDuration("bulk_delete", time.Since(start)) }(time.Now())

	return s.bulk().RemoveBulk(ctx, ids)
}

// AssignCategory adds one category to every listed article, or to none when any is missing.
func (s *Service) AssignCategory(ctx context.Context, categoryID string, articleIDs []string) (_ *BulkAssignResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.AssignCategory",
		attribute.String("category_id", categoryID),
		attribute.Int("article_ids", len(articleIDs)))
	defer func() { tracing.EndSpan(span, err) }()
	defer func(start time.Time) { metrics.RecordOperationDuration("bulk_assign", time.Since(start)) }(time.Now())

	return s.bulk().AssignCategory(ctx, categoryID, articleIDs)
}

func validateArticle(a *entity.Article) error {
	if err := entity.ValidateTitle(a.Title); err != nil {
		return err
	}
	if err := entity.ValidateDescription(a.Description); err != nil {
		return err
	}
	return entity.ValidateArticleType(a.Type)
}

func (in UpdateInput) hasChanges() bool {
	return in.Title != nil || in.Description != nil || in.Type != nil || in.Categories.Set
}

// applyUpdate copies the non-nil scalar fields of in onto a, trimmed and validated.
func applyUpdate(a *entity.Article, in UpdateInput) error {
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	return validateArticle(a)
}
