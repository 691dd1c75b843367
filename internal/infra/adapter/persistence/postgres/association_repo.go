package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"content-api/internal/infra/db"
	"content-api/internal/repository"
)

type AssociationRepo struct {
	db *sql.DB
}

func NewAssociationRepo(conn *sql.DB) repository.AssociationRepository {
	return &AssociationRepo{db: conn}
}

func (repo *AssociationRepo) q(ctx context.Context) db.Querier {
	return db.Conn(ctx, repo.db)
}

func (repo *AssociationRepo) CategoryIDs(ctx context.Context, articleID string) ([]string, error) {
	const query = `SELECT category_id FROM article_categories WHERE article_id = $1`
	rows, err := repo.q(ctx).QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, classify("list article links", "association", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify("list article links", "association", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list article links", "association", err)
	}
	return ids, nil
}

// Link は重複を ON CONFLICT DO NOTHING で無視する
func (repo *AssociationRepo) Link(ctx context.Context, articleID string, categoryIDs []string) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}

	b := psql.Insert("article_categories").Columns("article_id", "category_id")
	for _, id := range categoryIDs {
		b = b.Values(articleID, id)
	}
	return repo.execInsert(ctx, "link categories", b)
}

func (repo *AssociationRepo) LinkArticles(ctx context.Context, categoryID string, articleIDs []string) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	b := psql.Insert("article_categories").Columns("article_id", "category_id")
	for _, id := range articleIDs {
		b = b.Values(id, categoryID)
	}
	return repo.execInsert(ctx, "assign category", b)
}

func (repo *AssociationRepo) execInsert(ctx context.Context, op string, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("ON CONFLICT (article_id, category_id) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: build query: %w", op, err)
	}

	res, err := repo.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, "association", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(op, "association", err)
	}
	return n, nil
}

func (repo *AssociationRepo) Unlink(ctx context.Context, articleID string, categoryIDs []string) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}

	query, args, err := psql.Delete("article_categories").
		Where(sq.Eq{"article_id": articleID}).
		Where(sq.Eq{"category_id": categoryIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("Unlink: build query: %w", err)
	}

	res, err := repo.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify("unlink categories", "association", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify("unlink categories", "association", err)
	}
	return n, nil
}
