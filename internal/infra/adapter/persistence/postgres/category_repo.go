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

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(conn *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: conn}
}

func (repo *CategoryRepo) q(ctx context.Context) db.Querier {
	return db.Conn(ctx, repo.db)
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	const query = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id, created_at`
	err := repo.q(ctx).QueryRowContext(ctx, query, category.Name).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return classify("create category", "category", err)
	}
	return nil
}

func (repo *CategoryRepo) Get(ctx context.Context, id string) (*entity.Category, error) {
	const query = `SELECT id, name, created_at FROM categories WHERE id = $1`
	c, err := scanCategory(repo.q(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("select category", "category", err)
	}
	return c, nil
}

func (repo *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	const query = `
SELECT id, name, created_at
FROM categories
ORDER BY created_at DESC, id DESC`
	rows, err := repo.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, classify("list categories", "category", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*entity.Category, 0, 32)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, classify("list categories", "category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list categories", "category", err)
	}
	return categories, nil
}

func (repo *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	const query = `UPDATE categories SET name = $1 WHERE id = $2`
	res, err := repo.q(ctx).ExecContext(ctx, query, category.Name, category.ID)
	if err != nil {
		return classify("update category", "category", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.NotFound("update category", "category", category.ID)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
	res, err := repo.q(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return classify("delete category", "category", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.NotFound("delete category", "category", id)
	}
	return nil
}

func (repo *CategoryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, classify("count categories", "category", err)
	}
	return count, nil
}

func (repo *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	const query = `SELECT id, name, created_at FROM categories WHERE name = $1`
	c, err := scanCategory(repo.q(ctx).QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find category by name", "category", err)
	}
	return c, nil
}

// InsertIfAbsent uses ON CONFLICT DO NOTHING so that losing a race on the
// unique name does not abort the surrounding transaction.
func (repo *CategoryRepo) InsertIfAbsent(ctx context.Context, name string) (string, bool, error) {
	query, args, err := psql.Insert("categories").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("InsertIfAbsent: build query: %w", err)
	}

	var id string
	err = repo.q(ctx).QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify("create category", "category", err)
	}
	return id, true, nil
}

func (repo *CategoryRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return existingIDs(ctx, repo.q(ctx), "categories", "category", ids)
}

func (repo *CategoryRepo) ListByArticle(ctx context.Context, articleID string) ([]entity.Category, error) {
	const query = `
SELECT c.id, c.name, c.created_at
FROM categories c
JOIN article_categories ac ON ac.category_id = c.id
WHERE ac.article_id = $1
ORDER BY c.created_at DESC, c.id DESC`
	rows, err := repo.q(ctx).QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, classify("list article categories", "category", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, classify("list article categories", "category", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list article categories", "category", err)
	}
	return categories, nil
}

func (repo *CategoryRepo) ListByArticles(ctx context.Context, articleIDs []string) (map[string][]entity.Category, error) {
	result := make(map[string][]entity.Category, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.
		Select("ac.article_id", "c.id", "c.name", "c.created_at").
		From("categories c").
		Join("article_categories ac ON ac.category_id = c.id").
		Where(sq.Eq{"ac.article_id": articleIDs}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListByArticles: build query: %w", err)
	}

	rows, err := repo.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list article categories", "category", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var articleID string
		var c entity.Category
		if err := rows.Scan(&articleID, &c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, classify("list article categories", "category", err)
		}
		result[articleID] = append(result[articleID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list article categories", "category", err)
	}
	return result, nil
}

func (repo *CategoryRepo) ArticleRefs(ctx context.Context, categoryIDs []string) (map[string][]entity.ArticleRef, error) {
	result := make(map[string][]entity.ArticleRef, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.
		Select("ac.category_id", "a.id", "a.title").
		From("article_categories ac").
		Join("articles a ON a.id = ac.article_id").
		Where(sq.Eq{"ac.category_id": categoryIDs}).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ArticleRefs: build query: %w", err)
	}

	rows, err := repo.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list category articles", "category", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var categoryID string
		var ref entity.ArticleRef
		if err := rows.Scan(&categoryID, &ref.ID, &ref.Title); err != nil {
			return nil, classify("list category articles", "category", err)
		}
		result[categoryID] = append(result[categoryID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list category articles", "category", err)
	}
	return result, nil
}
