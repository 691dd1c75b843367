// Package comment exposes comment CRUD over HTTP.
// Comments are created against an existing article and never move to another one.
package comment

import (
	"net/http"

	cmtUC "content-api/internal/usecase/comment"
)

// Register registers all comment-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *cmtUC.Service) {
	mux.Handle("POST   /comments", CreateHandler{svc})
	mux.Handle("GET    /articles/{id}/comments", ListByArticleHandler{svc})
	mux.Handle("GET    /comments/{id}", GetHandler{svc})
	mux.Handle("PATCH  /comments/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /comments/{id}", DeleteHandler{svc})
}
