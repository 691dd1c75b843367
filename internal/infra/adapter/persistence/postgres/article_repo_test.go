package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"content-api/internal/domain/entity"
	pg "content-api/internal/infra/adapter/persistence/postgres"
	"content-api/internal/infra/db"
	"content-api/internal/repository"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var articleCols = []string{"id", "title", "description", "type", "created_at", "updated_at"}

func artRow(rows *sqlmock.Rows, a *entity.Article) *sqlmock.Rows {
	return rows.AddRow(a.ID, a.Title, a.Description, string(a.Type), a.CreatedAt, a.UpdatedAt)
}

func sampleArticle(id string) *entity.Article {
	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	return &entity.Article{
		ID:          id,
		Title:       "Go generics in practice",
		Description: "A walk through type parameters",
		Type:        entity.ArticleTypeLong,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

/* ─────────────────────────── 1. Create ─────────────────────────── */

func TestArticleRepo_Create(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("Go generics in practice", "A walk through type parameters", "long").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a1", now, now))

	repo := pg.NewArticleRepo(sqlDB)
	a := &entity.Article{
		Title:       "Go generics in practice",
		Description: "A walk through type parameters",
		Type:        entity.ArticleTypeLong,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if a.ID != "a1" || !a.CreatedAt.Equal(now) || !a.UpdatedAt.Equal(now) {
		t.Errorf("returned columns not applied: %+v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. Get ─────────────────────────── */

func TestArticleRepo_Get(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	want := sampleArticle("a1")
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles a")).
		WithArgs("a1").
		WillReturnRows(artRow(sqlmock.NewRows(articleCols), want))

	repo := pg.NewArticleRepo(sqlDB)
	got, err := repo.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles a")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(articleCols))

	repo := pg.NewArticleRepo(sqlDB)
	got, err := repo.Get(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("Get = (%v, %v), want (nil, nil)", got, err)
	}
}

/* ─────────────────────────── 3. List / Count ─────────────────────────── */

func TestArticleRepo_List(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	rows := sqlmock.NewRows(articleCols)
	artRow(rows, sampleArticle("a2"))
	artRow(rows, sampleArticle("a1"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM articles a WHERE EXISTS")).
		WithArgs("c1").
		WillReturnRows(rows)

	repo := pg.NewArticleRepo(sqlDB)
	got, err := repo.List(context.Background(), repository.ArticleQuery{
		Filter:     repository.ArticleFilter{CategoryID: "c1"},
		Limit:      10,
		Descending: true,
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 2 || got[0].ID != "a2" || got[1].ID != "a1" {
		t.Fatalf("List = %+v", got)
	}
}

func TestArticleRepo_Count(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles a")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	repo := pg.NewArticleRepo(sqlDB)
	got, err := repo.Count(context.Background(), repository.ArticleFilter{})
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 25 {
		t.Errorf("Count = %d, want 25", got)
	}
}

func TestArticleRepo_List_StoreFailureIsInternal(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery("FROM articles").WillReturnError(errors.New("connection reset"))

	repo := pg.NewArticleRepo(sqlDB)
	_, err := repo.List(context.Background(), repository.ArticleQuery{Limit: 10})
	if !errors.Is(err, entity.ErrInternal) {
		t.Fatalf("err = %v, want ErrInternal", err)
	}
}

/* ─────────────────────────── 4. Update ─────────────────────────── */

func TestArticleRepo_Update(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	later := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs("New title", "New description", "short", "a1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(later))

	repo := pg.NewArticleRepo(sqlDB)
	a := &entity.Article{ID: "a1", Title: "New title", Description: "New description", Type: entity.ArticleTypeShort}
	if err := repo.Update(context.Background(), a); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if !a.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", a.UpdatedAt, later)
	}
}

func TestArticleRepo_Update_NotFound(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE articles SET")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	repo := pg.NewArticleRepo(sqlDB)
	err := repo.Update(context.Background(), &entity.Article{ID: "a9", Type: entity.ArticleTypeLong})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

/* ─────────────────────────── 5. Delete ─────────────────────────── */

func TestArticleRepo_Delete(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(sqlDB)
	if err := repo.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := repo.Delete(context.Background(), "a1"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestArticleRepo_DeleteMany(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id IN ($1,$2,$3)")).
		WithArgs("a1", "a2", "a3").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := pg.NewArticleRepo(sqlDB)
	n, err := repo.DeleteMany(context.Background(), []string{"a1", "a2", "a3"})
	if err != nil {
		t.Fatalf("DeleteMany err=%v", err)
	}
	if n != 3 {
		t.Errorf("DeleteMany = %d, want 3", n)
	}
}

func TestArticleRepo_DeleteMany_Empty(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	repo := pg.NewArticleRepo(sqlDB)
	n, err := repo.DeleteMany(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("DeleteMany(nil) = (%d, %v), want (0, nil)", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 6. ExistingIDs ─────────────────────────── */

func TestArticleRepo_ExistingIDs(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM articles WHERE id IN ($1,$2,$3)")).
		WithArgs("a1", "a2", "a3").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a1").AddRow("a3"))

	repo := pg.NewArticleRepo(sqlDB)
	got, err := repo.ExistingIDs(context.Background(), []string{"a1", "a2", "a3"})
	if err != nil {
		t.Fatalf("ExistingIDs err=%v", err)
	}
	if diff := cmp.Diff([]string{"a1", "a3"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

/* ─────────────────────────── 7. Transaction ─────────────────────────── */

func TestArticleRepo_UsesTransactionFromContext(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id IN ($1)")).
		WithArgs("a1").
		WillReturnResult(driver.RowsAffected(1))
	mock.ExpectCommit()

	tr := db.NewTransactor(sqlDB)
	repo := pg.NewArticleRepo(sqlDB)

	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.DeleteMany(ctx, []string{"a1"})
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
