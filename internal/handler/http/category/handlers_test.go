package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/handler/http/category"
	catUC "content-api/internal/usecase/category"
	"content-api/tests/fixtures"
)

func newMux(store *fixtures.Store) *http.ServeMux {
	mux := http.NewServeMux()
	category.Register(mux, &catUC.Service{Repo: store.Categories(), Tx: store.Transactor()})
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "created", body: `{"name":"  golang  "}`, wantCode: http.StatusCreated},
		{name: "duplicate", body: `{"name":"existing"}`, wantCode: http.StatusConflict},
		{name: "blank", body: `{"name":"   "}`, wantCode: http.StatusBadRequest},
		{name: "too long", body: `{"name":"` + strings.Repeat("x", 51) + `"}`, wantCode: http.StatusBadRequest},
		{name: "malformed", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fixtures.NewStore()
			store.AddCategory("existing")

			rr := do(newMux(store), http.MethodPost, "/categories", tt.body)
			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())
			if tt.wantCode == http.StatusCreated {
				var got category.DTO
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, "golang", got.Name)
				assert.Empty(t, got.Articles)
			}
		})
	}
}

func TestListHandler(t *testing.T) {
	store := fixtures.NewStore()
	older := store.AddCategory("older")
	store.AddCategory("newer")
	a := store.AddArticle("Linked article")
	store.Link(a.ID, older.ID)

	rr := do(newMux(store), http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got []category.DTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Name)
	assert.Equal(t, []category.ArticleRefDTO{{ID: a.ID, Title: "Linked article"}}, got[1].Articles)
}

func TestGetAndUpdateHandler(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("golang")
	store.AddCategory("taken")
	mux := newMux(store)

	assert.Equal(t, http.StatusOK, do(mux, http.MethodGet, "/categories/"+c.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/categories/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodGet, "/categories/abc", "").Code)

	rr := do(mux, http.MethodPatch, "/categories/"+c.ID, `{"name":"go"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got category.DTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "go", got.Name)

	assert.Equal(t, http.StatusConflict, do(mux, http.MethodPatch, "/categories/"+c.ID, `{"name":"taken"}`).Code)
}

func TestDeleteHandler_KeepsArticles(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory("golang")
	a := store.AddArticle("Linked article")
	store.Link(a.ID, c.ID)
	mux := newMux(store)

	rr := do(mux, http.MethodDelete, "/categories/"+c.ID, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got category.DeleteDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Category deleted successfully", got.Message)
	assert.Equal(t, category.SummaryDTO{ID: c.ID, Name: "golang"}, got.Category)
	assert.Equal(t, []category.ArticleRefDTO{{ID: a.ID, Title: "Linked article"}}, got.AffectedArticles)

	assert.True(t, store.HasArticle(a.ID))
	assert.Equal(t, 0, store.LinkCount())
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodDelete, "/categories/"+c.ID, "").Code)
}
