package postgres

import (
	"content-api/internal/domain/entity"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(s rowScanner) (*entity.Article, error) {
	var a entity.Article
	var typ string
	if err := s.Scan(&a.ID, &a.Title, &a.Description, &typ, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Type = entity.ArticleType(typ)
	return &a, nil
}

func scanCategory(s rowScanner) (*entity.Category, error) {
	var c entity.Category
	if err := s.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
