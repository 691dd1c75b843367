package comment

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	cmtUC "content-api/internal/usecase/comment"
)

var errInvalidBody = errors.New("invalid JSON body")

type CreateHandler struct{ Svc *cmtUC.Service }

// ServeHTTP コメント作成
// @Summary      コメント作成
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        comment body object true "{\"articleId\": \"uuid\", \"text\": \"...\"}"
// @Success      201 {object} DTO "作成されたコメント"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Router       /comments [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID string `json:"articleId"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	created, err := h.Svc.Create(r.Context(), cmtUC.CreateInput{ArticleID: req.ArticleID, Text: req.Text})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}

type ListByArticleHandler struct{ Svc *cmtUC.Service }

// ServeHTTP 記事のコメント一覧取得
// @Summary      記事のコメント一覧取得
// @Description  記事のコメントを作成日時の新しい順に返します
// @Tags         comments
// @Produce      json
// @Param        id path string true "記事ID (UUID)"
// @Success      200 {array} DTO "コメント一覧"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Router       /articles/{id}/comments [get]
func (h ListByArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	list, err := h.Svc.ListByArticle(r.Context(), articleID)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *cmtUC.Service }

// ServeHTTP コメント取得
// @Summary      コメント取得
// @Tags         comments
// @Produce      json
// @Param        id path string true "コメントID (UUID)"
// @Success      200 {object} DTO "コメント"
// @Failure      404 {object} respond.ErrorBody "Not found - comment not found"
// @Router       /comments/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(c))
}

type UpdateHandler struct{ Svc *cmtUC.Service }

// ServeHTTP コメント更新
// @Summary      コメント更新
// @Description  本文のみ更新できます。articleId は変更できません
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "コメントID (UUID)"
// @Param        comment body object true "{\"text\": \"...\"}"
// @Success      200 {object} DTO "更新後のコメント"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      404 {object} respond.ErrorBody "Not found - comment not found"
// @Router       /comments/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	updated, err := h.Svc.Update(r.Context(), cmtUC.UpdateInput{ID: id, Text: req.Text})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}

type DeleteHandler struct{ Svc *cmtUC.Service }

// ServeHTTP コメント削除
// @Summary      コメント削除
// @Tags         comments
// @Produce      json
// @Param        id path string true "コメントID (UUID)"
// @Success      200 {object} DTO "削除されたコメント"
// @Failure      404 {object} respond.ErrorBody "Not found - comment not found"
// @Router       /comments/{id} [delete]
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
