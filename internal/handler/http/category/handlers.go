package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	catUC "content-api/internal/usecase/category"
)

var errInvalidBody = errors.New("invalid JSON body")

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ一覧取得
// @Summary      カテゴリ一覧取得
// @Description  すべてのカテゴリを作成日時の新しい順に、紐付く記事と一緒に返します
// @Tags         categories
// @Produce      json
// @Success      200 {array} DTO "カテゴリ一覧"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /categories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.FromError(w, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

type CreateHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ作成
// @Summary      カテゴリ作成
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        category body object true "{\"name\": \"golang\"}"
// @Success      201 {object} DTO "作成されたカテゴリ"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid name"
// @Failure      409 {object} respond.ErrorBody "Conflict - name already exists"
// @Router       /categories [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	created, err := h.Svc.Create(r.Context(), catUC.CreateInput{Name: req.Name})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}

type GetHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ詳細取得
// @Summary      カテゴリ詳細取得
// @Tags         categories
// @Produce      json
// @Param        id path string true "カテゴリID (UUID)"
// @Success      200 {object} DTO "カテゴリ詳細"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid ID"
// @Failure      404 {object} respond.ErrorBody "Not found - category not found"
// @Router       /categories/{id} [get]
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

type UpdateHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ名変更
// @Summary      カテゴリ名変更
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "カテゴリID (UUID)"
// @Param        category body object true "{\"name\": \"golang\"}"
// @Success      200 {object} DTO "更新後のカテゴリ"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      404 {object} respond.ErrorBody "Not found - category not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - name already exists"
// @Router       /categories/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req struct {
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	updated, err := h.Svc.Update(r.Context(), catUC.UpdateInput{ID: id, Name: req.Name})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}

type DeleteHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ削除
// @Summary      カテゴリ削除
// @Description  カテゴリを削除します。記事は削除されず、紐付けのみ外れます
// @Tags         categories
// @Produce      json
// @Param        id path string true "カテゴリID (UUID)"
// @Success      200 {object} DeleteDTO "削除されたカテゴリと影響を受けた記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid ID"
// @Failure      404 {object} respond.ErrorBody "Not found - category not found"
// @Router       /categories/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}
	res, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, DeleteDTO{
		Message:          "Category deleted successfully",
		Category:         SummaryDTO{ID: res.Category.ID, Name: res.Category.Name},
		AffectedArticles: toRefs(res.AffectedArticles),
	})
}
