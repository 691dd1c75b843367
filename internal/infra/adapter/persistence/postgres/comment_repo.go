package postgres

import (
	"context"
	"database/sql"
	"errors"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/db"
	"content-api/internal/repository"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(conn *sql.DB) repository.CommentRepository {
	return &CommentRepo{db: conn}
}

func (repo *CommentRepo) q(ctx context.Context) db.Querier {
	return db.Conn(ctx, repo.db)
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (text, article_id)
VALUES ($1, $2)
RETURNING id, created_at, updated_at`
	err := repo.q(ctx).QueryRowContext(ctx, query, comment.Text, comment.ArticleID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return classify("create comment", "comment", err)
	}
	return nil
}

func (repo *CommentRepo) Get(ctx context.Context, id string) (*entity.Comment, error) {
	const query = `
SELECT c.id, c.text, c.article_id, c.created_at, c.updated_at, a.title
FROM comments c
JOIN articles a ON a.id = c.article_id
WHERE c.id = $1`
	var c entity.Comment
	var title string
	err := repo.q(ctx).QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Text, &c.ArticleID, &c.CreatedAt, &c.UpdatedAt, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("select comment", "comment", err)
	}
	c.Article = &entity.ArticleRef{ID: c.ArticleID, Title: title}
	return &c, nil
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]entity.Comment, error) {
	const query = `
SELECT id, text, article_id, created_at, updated_at
FROM comments
WHERE article_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := repo.q(ctx).QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, classify("list comments", "comment", err)
	}
	defer func() { _ = rows.Close() }()

	comments := []entity.Comment{}
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ArticleID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, classify("list comments", "comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list comments", "comment", err)
	}
	return comments, nil
}

// Update writes the text only. article_id is never part of the statement.
func (repo *CommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	const query = `
UPDATE comments SET
       text       = $1,
       updated_at = now()
WHERE id = $2
RETURNING updated_at`
	err := repo.q(ctx).QueryRowContext(ctx, query, comment.Text, comment.ID).Scan(&comment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.NotFound("update comment", "comment", comment.ID)
	}
	if err != nil {
		return classify("update comment", "comment", err)
	}
	return nil
}

func (repo *CommentRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	res, err := repo.q(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return classify("delete comment", "comment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.NotFound("delete comment", "comment", id)
	}
	return nil
}

func (repo *CommentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&count); err != nil {
		return 0, classify("count comments", "comment", err)
	}
	return count, nil
}
