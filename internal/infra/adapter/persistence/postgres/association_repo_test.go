package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"content-api/internal/domain/entity"
	pg "content-api/internal/infra/adapter/persistence/postgres"
)

func TestAssociationRepo_CategoryIDs(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM article_categories WHERE article_id = $1")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow("c1").AddRow("c2"))

	repo := pg.NewAssociationRepo(sqlDB)
	got, err := repo.CategoryIDs(context.Background(), "a1")
	if err != nil {
		t.Fatalf("CategoryIDs err=%v", err)
	}
	if diff := cmp.Diff([]string{"c1", "c2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAssociationRepo_Link(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO article_categories (article_id,category_id) VALUES ($1,$2),($3,$4) ON CONFLICT (article_id, category_id) DO NOTHING")).
		WithArgs("a1", "c1", "a1", "c2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := pg.NewAssociationRepo(sqlDB)
	n, err := repo.Link(context.Background(), "a1", []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("Link err=%v", err)
	}
	if n != 2 {
		t.Errorf("Link = %d, want 2", n)
	}
}

func TestAssociationRepo_Link_EmptyIsNoop(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	repo := pg.NewAssociationRepo(sqlDB)
	n, err := repo.Link(context.Background(), "a1", nil)
	if err != nil || n != 0 {
		t.Fatalf("Link(nil) = (%d, %v)", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAssociationRepo_LinkArticles_ExistingPairsIgnored(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_categories")).
		WithArgs("a1", "c1", "a2", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewAssociationRepo(sqlDB)
	n, err := repo.LinkArticles(context.Background(), "c1", []string{"a1", "a2"})
	if err != nil {
		t.Fatalf("LinkArticles err=%v", err)
	}
	if n != 1 {
		t.Errorf("LinkArticles = %d, want 1", n)
	}
}

func TestAssociationRepo_LinkArticles_ForeignKeyViolation(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_categories")).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "article_categories_article_id_fkey"})

	repo := pg.NewAssociationRepo(sqlDB)
	_, err := repo.LinkArticles(context.Background(), "c1", []string{"a1"})
	if !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}

func TestAssociationRepo_Unlink(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM article_categories WHERE article_id = $1 AND category_id IN ($2,$3)")).
		WithArgs("a1", "c1", "c2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := pg.NewAssociationRepo(sqlDB)
	n, err := repo.Unlink(context.Background(), "a1", []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("Unlink err=%v", err)
	}
	if n != 2 {
		t.Errorf("Unlink = %d, want 2", n)
	}
}
