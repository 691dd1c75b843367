package category_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/domain/entity"
	catUC "content-api/internal/usecase/category"
	"content-api/tests/fixtures"
)

func newService(store *fixtures.Store) *catUC.Service {
	return &catUC.Service{
		Repo: store.Categories(),
		Tx:   store.Transactor(),
	}
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	store := fixtures.NewStore()
	svc := newService(store)

	cat, err := svc.Create(context.Background(), catUC.CreateInput{Name: "  golang  "})

	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "golang", cat.Name)
	assert.Equal(t, 1, store.CategoryCount())
}

func TestService_Create_DuplicateName(t *testing.T) {
	store := fixtures.NewStore()
	store.AddCategory("golang")
	svc := newService(store)

	_, err := svc.Create(context.Background(), catUC.CreateInput{Name: "golang"})

	assert.True(t, errors.Is(err, entity.ErrConflict), "got %v", err)
	assert.Equal(t, 1, store.CategoryCount(), "duplicate must not be created")
}

func TestService_Create_Validation(t *testing.T) {
	svc := newService(fixtures.NewStore())

	for _, name := range []string{"", "   ", strings.Repeat("x", entity.CategoryNameMaxLen+1)} {
		_, err := svc.Create(context.Background(), catUC.CreateInput{Name: name})
		var ve *entity.ValidationError
		assert.True(t, errors.As(err, &ve), "name %q: got %v", name, err)
	}
}

func TestService_List_WithArticleRefs(t *testing.T) {
	store := fixtures.NewStore()
	older := store.AddCategory("older")
	newer := store.AddCategory("newer")
	a1 := store.AddArticle("First article")
	a2 := store.AddArticle("Second article")
	store.Link(a1.ID, older.ID)
	store.Link(a2.ID, older.ID)

	cats, err := newService(store).List(context.Background())

	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, newer.ID, cats[0].ID, "newest first")
	assert.Empty(t, cats[0].Articles)
	assert.Equal(t, []entity.ArticleRef{
		{ID: a2.ID, Title: "Second article"},
		{ID: a1.ID, Title: "First article"},
	}, cats[1].Articles)
}

func TestService_Get(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("go")
	svc := newService(store)

	t.Run("found", func(t *testing.T) {
		got, err := svc.Get(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, "go", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		_, err := svc.Get(context.Background(), id)
		assert.True(t, errors.Is(err, entity.ErrNotFound))
		assert.Contains(t, err.Error(), id)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "42")
		assert.True(t, errors.Is(err, entity.ErrValidationFailed))
	})
}

func TestService_Update(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("go")
	store.AddCategory("rust")
	svc := newService(store)

	t.Run("rename", func(t *testing.T) {
		got, err := svc.Update(context.Background(), catUC.UpdateInput{ID: c.ID, Name: ptr(" golang ")})
		require.NoError(t, err)
		assert.Equal(t, "golang", got.Name)
		stored, _ := store.CategoryByName("golang")
		assert.Equal(t, c.ID, stored.ID)
	})

	t.Run("nil name leaves category unchanged", func(t *testing.T) {
		got, err := svc.Update(context.Background(), catUC.UpdateInput{ID: c.ID})
		require.NoError(t, err)
		assert.Equal(t, "golang", got.Name)
		assert.Equal(t, 1, store.Calls["categories.Update"], "only the rename wrote")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Update(context.Background(), catUC.UpdateInput{ID: c.ID, Name: ptr("rust")})
		assert.True(t, errors.Is(err, entity.ErrConflict))
	})

	t.Run("missing category keeps NotFound", func(t *testing.T) {
		_, err := svc.Update(context.Background(), catUC.UpdateInput{ID: uuid.NewString(), Name: ptr("x")})
		assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
	})
}

func TestService_Delete(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("go")
	keep := store.AddCategory("rust")
	a1 := store.AddArticle("First article")
	a2 := store.AddArticle("Second article")
	store.Link(a1.ID, c.ID)
	store.Link(a2.ID, c.ID)
	store.Link(a2.ID, keep.ID)

	res, err := newService(store).Delete(context.Background(), c.ID)

	require.NoError(t, err)
	assert.Equal(t, c.ID, res.Category.ID)
	assert.Equal(t, []entity.ArticleRef{
		{ID: a2.ID, Title: "Second article"},
		{ID: a1.ID, Title: "First article"},
	}, res.AffectedArticles)
	assert.True(t, store.HasArticle(a1.ID), "articles survive category deletion")
	assert.True(t, store.HasArticle(a2.ID))
	assert.Equal(t, []string{keep.ID}, store.CategoryIDsOf(a2.ID))
	assert.Equal(t, 1, store.LinkCount())
}

func TestService_Delete_RollsBackOnFailure(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("go")
	a := store.AddArticle("First article")
	store.Link(a.ID, c.ID)
	store.Errors["categories.Delete"] = entity.Internal("delete category", errors.New("connection reset"))

	_, err := newService(store).Delete(context.Background(), c.ID)

	assert.True(t, errors.Is(err, entity.ErrInternal))
	assert.Equal(t, 1, store.CategoryCount())
	assert.Equal(t, 1, store.LinkCount())
	assert.Equal(t, 1, store.Calls["tx.Rollback"])
}

func TestService_Delete_NotFound(t *testing.T) {
	_, err := newService(fixtures.NewStore()).Delete(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}
