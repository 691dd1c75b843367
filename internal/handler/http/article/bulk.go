package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

var errInvalidBody = errors.New("invalid JSON body")

type BulkDeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事一括削除
// @Summary      記事一括削除
// @Description  指定された記事をすべて削除します。1件でも存在しなければ何も削除しません
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body body object true "{\"ids\": [\"uuid\", ...]}"
// @Success      200 {object} BulkDeleteDTO "削除件数"
// @Failure      400 {object} respond.ErrorBody "Bad request - empty or malformed IDs"
// @Failure      404 {object} respond.ErrorBody "Not found - lists every missing ID"
// @Router       /articles/bulk [delete]
func (h BulkDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	res, err := h.Svc.RemoveBulk(r.Context(), req.IDs)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, BulkDeleteDTO{Count: res.Count})
}

type BulkAssignHandler struct{ Svc *artUC.Service }

// ServeHTTP カテゴリ一括付与
// @Summary      カテゴリ一括付与
// @Description  1つのカテゴリを複数の記事に追加します。既存のカテゴリは維持されます
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body body object true "{\"categoryId\": \"uuid\", \"articleIds\": [\"uuid\", ...]}"
// @Success      200 {object} BulkAssignDTO "付与件数とメッセージ"
// @Failure      400 {object} respond.ErrorBody "Bad request - empty or malformed IDs"
// @Failure      404 {object} respond.ErrorBody "Not found - category or articles not found"
// @Router       /articles/bulk-assign-articles [put]
func (h BulkAssignHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID string   `json:"categoryId"`
		ArticleIDs []string `json:"articleIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	res, err := h.Svc.AssignCategory(r.Context(), req.CategoryID, req.ArticleIDs)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, BulkAssignDTO{Count: res.Count, Message: res.Message})
}
