package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS_Files(t *testing.T) {
	files, err := fs.Glob(MigrationsFS(), "*.sql")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"00001_create_articles.sql",
		"00002_create_categories.sql",
		"00003_create_article_categories.sql",
		"00004_create_comments.sql",
	}, files)
}

func TestMigrationsFS_GooseAnnotations(t *testing.T) {
	files, err := fs.Glob(MigrationsFS(), "*.sql")
	require.NoError(t, err)

	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			body, err := fs.ReadFile(MigrationsFS(), name)
			require.NoError(t, err)

			text := string(body)
			assert.True(t, strings.HasPrefix(text, "-- +goose Up"), "migration must start with an Up section")
			assert.Contains(t, text, "-- +goose Down")
		})
	}
}

func TestMigrations_Constraints(t *testing.T) {
	read := func(name string) string {
		body, err := fs.ReadFile(MigrationsFS(), name)
		require.NoError(t, err)
		return string(body)
	}

	assert.Contains(t, read("00002_create_categories.sql"), "UNIQUE (name)")

	join := read("00003_create_article_categories.sql")
	assert.Contains(t, join, "PRIMARY KEY (article_id, category_id)")
	assert.Equal(t, 2, strings.Count(join, "ON DELETE CASCADE"))

	assert.Contains(t, read("00004_create_comments.sql"), "REFERENCES articles (id) ON DELETE CASCADE")
}
