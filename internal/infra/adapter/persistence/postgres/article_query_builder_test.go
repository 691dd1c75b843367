package postgres_test

import (
	"testing"

	pg "content-api/internal/infra/adapter/persistence/postgres"
	"content-api/internal/repository"
)

const selectArticles = "SELECT a.id, a.title, a.description, a.type, a.created_at, a.updated_at FROM articles a"

/* ──────────────────────────── BuildSelect Tests ──────────────────────────── */

func TestArticleQueryBuilder_BuildSelect(t *testing.T) {
	tests := []struct {
		name     string
		query    repository.ArticleQuery
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:    "default ordering first page",
			query:   repository.ArticleQuery{Limit: 10, Descending: true},
			wantSQL: selectArticles + " ORDER BY a.created_at DESC, a.id DESC LIMIT 10",
		},
		{
			name:    "title ascending with offset",
			query:   repository.ArticleQuery{Limit: 5, Offset: 15, SortBy: "title"},
			wantSQL: selectArticles + " ORDER BY a.title ASC, a.id ASC LIMIT 5 OFFSET 15",
		},
		{
			name:    "unknown sort field falls back to created_at",
			query:   repository.ArticleQuery{Limit: 10, SortBy: "bogus", Descending: true},
			wantSQL: selectArticles + " ORDER BY a.created_at DESC, a.id DESC LIMIT 10",
		},
		{
			name: "category filter",
			query: repository.ArticleQuery{
				Filter:     repository.ArticleFilter{CategoryID: "c1"},
				Limit:      10,
				Offset:     10,
				SortBy:     "updatedAt",
				Descending: true,
			},
			wantSQL: selectArticles +
				" WHERE EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = $1)" +
				" ORDER BY a.updated_at DESC, a.id DESC LIMIT 10 OFFSET 10",
			wantArgs: []interface{}{"c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := pg.NewArticleQueryBuilder()
			sql, args, err := builder.BuildSelect(tt.query)
			if err != nil {
				t.Fatalf("BuildSelect err=%v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql =\n%q\nwant\n%q", sql, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("len(args) = %d, want %d", len(args), len(tt.wantArgs))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestArticleQueryBuilder_BuildSelect_RejectsNegativeWindow(t *testing.T) {
	builder := pg.NewArticleQueryBuilder()
	for _, q := range []repository.ArticleQuery{
		{Limit: 10, Offset: -116},
		{Limit: -1},
	} {
		if sql, _, err := builder.BuildSelect(q); err == nil {
			t.Errorf("BuildSelect(limit=%d offset=%d) = %q, want error", q.Limit, q.Offset, sql)
		}
	}
}

/* ──────────────────────────── BuildCount Tests ──────────────────────────── */

func TestArticleQueryBuilder_BuildCount_NoFilter(t *testing.T) {
	builder := pg.NewArticleQueryBuilder()
	sql, args, err := builder.BuildCount(repository.ArticleFilter{})
	if err != nil {
		t.Fatalf("BuildCount err=%v", err)
	}

	if sql != "SELECT COUNT(*) FROM articles a" {
		t.Errorf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args should be empty, got %v", args)
	}
}

func TestArticleQueryBuilder_BuildCount_SharesFilterWithSelect(t *testing.T) {
	builder := pg.NewArticleQueryBuilder()
	filter := repository.ArticleFilter{CategoryID: "c1"}

	countSQL, countArgs, err := builder.BuildCount(filter)
	if err != nil {
		t.Fatalf("BuildCount err=%v", err)
	}
	want := "SELECT COUNT(*) FROM articles a WHERE EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = $1)"
	if countSQL != want {
		t.Errorf("sql =\n%q\nwant\n%q", countSQL, want)
	}
	if len(countArgs) != 1 || countArgs[0] != "c1" {
		t.Errorf("args = %v, want [c1]", countArgs)
	}
}
