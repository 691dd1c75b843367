package pathutil

import (
	"net/http"

	"content-api/internal/domain/entity"
)

// ExtractID returns the named path wildcard (e.g. "{id}" in "GET /articles/{id}")
// after checking that it is a well-formed UUID.
// A malformed value is reported as a *entity.ValidationError on field name.
//
// Example:
//
//	mux.Handle("GET /articles/{id}", h)
//	id, err := ExtractID(r, "id")
func ExtractID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if err := entity.ValidateID(name, id); err != nil {
		return "", err
	}
	return id, nil
}
