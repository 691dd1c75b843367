package article

import (
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  記事を削除し、削除前の記事を返します。コメントとカテゴリの紐付けも削除されます
// @Tags         articles
// @Produce      json
// @Param        id path string true "記事ID (UUID)"
// @Success      200 {object} DTO "削除された記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid ID"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(deleted))
}
