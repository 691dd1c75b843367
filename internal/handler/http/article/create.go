package article

import (
	"encoding/json"
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

type createRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	CategoryIDs []string          `json:"categoryIds"`
	Categories  []categoryRequest `json:"categories"`
}

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。categoryIds は既存カテゴリ、categories は名前で指定し、存在しなければ作成します
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body createRequest true "記事情報"
// @Success      201 {object} DTO "作成された記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      404 {object} respond.ErrorBody "Not found - category IDs not found"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        entity.ArticleType(req.Type),
		Categories: artUC.CategoryInput{
			IDs:   req.CategoryIDs,
			Names: names(req.Categories),
		},
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(created))
}
