package article

import (
	"log/slog"
	"net/http"

	artUC "content-api/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// The literal bulk routes take precedence over the {id} wildcard.
func Register(mux *http.ServeMux, svc *artUC.Service, logger *slog.Logger) {
	mux.Handle("GET    /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("POST   /articles", CreateHandler{svc})
	mux.Handle("GET    /articles/{id}", GetHandler{svc})
	mux.Handle("PATCH  /articles/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})

	mux.Handle("DELETE /articles/bulk", BulkDeleteHandler{svc})
	mux.Handle("PUT    /articles/bulk-assign-articles", BulkAssignHandler{svc})
}
