// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"content-api/internal/repository"
)

// psql renders $N placeholders for every builder in this package.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"a.id", "a.title", "a.description", "a.type", "a.created_at", "a.updated_at",
}

// articleSortColumns maps API sort fields onto columns. Keys must match
// repository.ArticleSortFields.
var articleSortColumns = map[string]string{
	"createdAt": "a.created_at",
	"updatedAt": "a.updated_at",
	"title":     "a.title",
	"type":      "a.type",
}

// ArticleQueryBuilder builds the article list and count queries.
// Both share the same WHERE clause so the total always matches the pages.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

func (qb *ArticleQueryBuilder) applyFilter(b sq.SelectBuilder, f repository.ArticleFilter) sq.SelectBuilder {
	if f.CategoryID != "" {
		b = b.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = ?)",
			f.CategoryID,
		))
	}
	return b
}

// BuildSelect builds the page query for q.
// Ties on the sort column are broken by id in the same direction.
func (qb *ArticleQueryBuilder) BuildSelect(q repository.ArticleQuery) (string, []interface{}, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return "", nil, fmt.Errorf("build article select: negative limit %d or offset %d", q.Limit, q.Offset)
	}
	dir := " ASC"
	if q.Descending {
		dir = " DESC"
	}
	col, ok := articleSortColumns[q.SortBy]
	if !ok {
		col = articleSortColumns["createdAt"]
	}

	b := psql.Select(articleColumns...).From("articles a")
	b = qb.applyFilter(b, q.Filter)
	b = b.OrderBy(col+dir, "a.id"+dir)
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}
	return b.ToSql()
}

// BuildCount builds the COUNT query matching filter.
func (qb *ArticleQueryBuilder) BuildCount(f repository.ArticleFilter) (string, []interface{}, error) {
	b := psql.Select("COUNT(*)").From("articles a")
	b = qb.applyFilter(b, f)
	return b.ToSql()
}
