package article

import (
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  指定されたIDの記事をカテゴリとコメント付きで取得します
// @Tags         articles
// @Produce      json
// @Param        id path string true "記事ID (UUID)"
// @Success      200 {object} DTO "記事詳細"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid article ID"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}
