package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/db"
	"content-api/internal/repository"
)

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(conn *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           conn,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

// q returns the transaction carried by ctx, or the pool.
func (repo *ArticleRepo) q(ctx context.Context) db.Querier {
	return db.Conn(ctx, repo.db)
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, description, type)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`
	err := repo.q(ctx).QueryRowContext(ctx, query,
		article.Title, article.Description, string(article.Type),
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return classify("insert article", "article", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT a.id, a.title, a.description, a.type, a.created_at, a.updated_at
FROM articles a
WHERE a.id = $1`
	article, err := scanArticle(repo.q(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("select article", "article", err)
	}
	return article, nil
}

func (repo *ArticleRepo) List(ctx context.Context, q repository.ArticleQuery) ([]*entity.Article, error) {
	query, args, err := repo.queryBuilder.BuildSelect(q)
	if err != nil {
		return nil, fmt.Errorf("List: build query: %w", err)
	}

	rows, err := repo.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list articles", "article", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: ページサイズ分を事前確保
	articles := make([]*entity.Article, 0, max(q.Limit, 0))
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, classify("list articles", "article", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list articles", "article", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Count(ctx context.Context, filter repository.ArticleFilter) (int64, error) {
	query, args, err := repo.queryBuilder.BuildCount(filter)
	if err != nil {
		return 0, fmt.Errorf("Count: build query: %w", err)
	}

	var count int64
	if err := repo.q(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, classify("count articles", "article", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles SET
       title       = $1,
       description = $2,
       type        = $3,
       updated_at  = now()
WHERE id = $4
RETURNING updated_at`
	err := repo.q(ctx).QueryRowContext(ctx, query,
		article.Title, article.Description, string(article.Type), article.ID,
	).Scan(&article.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.NotFound("update article", "article", article.ID)
	}
	if err != nil {
		return classify("update article", "article", err)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.q(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return classify("delete article", "article", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.NotFound("delete article", "article", id)
	}
	return nil
}

func (repo *ArticleRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := psql.Delete("articles").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("DeleteMany: build query: %w", err)
	}

	res, err := repo.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify("delete articles", "article", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify("delete articles", "article", err)
	}
	return n, nil
}

// ExistingIDs はバッチで存在チェックを行い、N+1問題を解消する
func (repo *ArticleRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return existingIDs(ctx, repo.q(ctx), "articles", "article", ids)
}

// existingIDs returns the subset of ids present in table, in one query.
func existingIDs(ctx context.Context, q db.Querier, table, entityName string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	query, args, err := psql.Select("id").From(table).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("existingIDs: build query: %w", err)
	}

	op := "lookup " + table
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, entityName, err)
	}
	defer func() { _ = rows.Close() }()

	found := make([]string, 0, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify(op, entityName, err)
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, entityName, err)
	}
	return found, nil
}
