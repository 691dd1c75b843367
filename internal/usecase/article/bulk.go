package article

import (
	"context"
	"fmt"
	"log/slog"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// BulkCoordinator runs batch mutations as validate-then-act units:
// every referenced ID is checked first, and the mutation runs only when all
// of them exist. Both phases share one transaction.
type BulkCoordinator struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Assoc      repository.AssociationRepository
	Tx         repository.Transactor
}

// RemoveBulk deletes every listed article, or none of them.
func (b *BulkCoordinator) RemoveBulk(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	ids = entity.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, &entity.ValidationError{Field: "ids", Message: "at least one article ID is required"}
	}
	if err := entity.ValidateIDs("ids", ids); err != nil {
		return nil, err
	}

	var deleted int64
	err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := b.requireArticles(ctx, opRemoveBulk, ids); err != nil {
			return err
		}
		n, err := b.Articles.DeleteMany(ctx, ids)
		if err != nil {
			return fmt.Errorf("%s: %w", opRemoveBulk, err)
		}
		if n != int64(len(ids)) {
			return entity.Conflict(opRemoveBulk, "article",
				fmt.Sprintf("%d of %d articles were removed concurrently", int64(len(ids))-n, len(ids)), nil)
		}
		deleted = n
		return nil
	})
	if err != nil {
		b.reject(ctx, "bulk_delete", len(ids), err)
		return nil, err
	}

	metrics.RecordBulkOperation("bulk_delete", "success", deleted)
	logging.FromContext(ctx).Info("articles deleted in bulk", slog.Int64("count", deleted))
	return &BulkDeleteResult{Count: deleted}, nil
}

// AssignCategory links one category to every listed article, or to none of them.
// Existing links are kept; the assignment only adds.
func (b *BulkCoordinator) AssignCategory(ctx context.Context, categoryID string, articleIDs []string) (*BulkAssignResult, error) {
	if err := entity.ValidateID("categoryId", categoryID); err != nil {
		return nil, err
	}
	ids := entity.UniqueIDs(articleIDs)
	if len(ids) == 0 {
		return nil, &entity.ValidationError{Field: "articleIds", Message: "at least one article ID is required"}
	}
	if err := entity.ValidateIDs("articleIds", ids); err != nil {
		return nil, err
	}

	var name string
	var linked int64
	err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
		cat, err := b.Categories.Get(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("%s: %w", opAssignCategory, err)
		}
		if cat == nil {
			return entity.NotFound(opAssignCategory, "category", categoryID)
		}
		if err := b.requireArticles(ctx, opAssignCategory, ids); err != nil {
			return err
		}
		n, err := b.Assoc.LinkArticles(ctx, categoryID, ids)
		if err != nil {
			return fmt.Errorf("%s: %w", opAssignCategory, err)
		}
		name, linked = cat.Name, n
		return nil
	})
	if err != nil {
		b.reject(ctx, "bulk_assign", len(ids), err)
		return nil, err
	}

	count := int64(len(ids))
	metrics.RecordBulkOperation("bulk_assign", "success", linked)
	logging.FromContext(ctx).Info("category assigned in bulk",
		slog.String("category_id", categoryID),
		slog.Int64("articles", count),
		slog.Int64("new_links", linked))
	return &BulkAssignResult{
		Count:   count,
		Message: fmt.Sprintf("Category %q assigned to %d article(s)", name, count),
	}, nil
}

// requireArticles fails with a NotFound naming every id absent from the store.
func (b *BulkCoordinator) requireArticles(ctx context.Context, op string, ids []string) error {
	found, err := b.Articles.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if missing := entity.MissingIDs(ids, found); len(missing) > 0 {
		return entity.NotFound(op, "article", missing...)
	}
	return nil
}

func (b *BulkCoordinator) reject(ctx context.Context, operation string, requested int, err error) {
	result := "failure"
	switch entity.KindOf(err) {
	case entity.KindNotFound, entity.KindValidationFailed:
		result = "rejected"
	}
	metrics.RecordBulkOperation(operation, result, 0)
	logging.FromContext(ctx).Warn("bulk operation rejected",
		slog.String("operation", operation),
		slog.Int("requested", requested),
		slog.String("kind", entity.KindOf(err).String()),
		slog.Any("error", err))
}
