// Package category exposes category CRUD over HTTP.
package category

import (
	"net/http"

	catUC "content-api/internal/usecase/category"
)

// Register registers all category-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET    /categories", ListHandler{svc})
	mux.Handle("POST   /categories", CreateHandler{svc})
	mux.Handle("GET    /categories/{id}", GetHandler{svc})
	mux.Handle("PATCH  /categories/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /categories/{id}", DeleteHandler{svc})
}
