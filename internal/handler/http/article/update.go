package article

import (
	"encoding/json"
	"net/http"

	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/pathutil"
	"content-api/internal/handler/http/respond"
	artUC "content-api/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// updateRequest uses pointers so that an omitted scalar and an empty one differ.
// The category lists record key presence: a present key, even null or [],
// replaces the whole category set.
type updateRequest struct {
	Title       *string                      `json:"title"`
	Description *string                      `json:"description"`
	Type        *string                      `json:"type"`
	CategoryIDs presentList[string]          `json:"categoryIds"`
	Categories  presentList[categoryRequest] `json:"categories"`
}

// presentList is a JSON array field that remembers whether its key was sent.
// encoding/json calls UnmarshalJSON for a present null too, so null counts as sent.
type presentList[T any] struct {
	Set   bool
	Items []T
}

func (l *presentList[T]) UnmarshalJSON(b []byte) error {
	l.Set = true
	l.Items = nil
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &l.Items)
}

func (req updateRequest) input(id string) artUC.UpdateInput {
	in := artUC.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Type != nil {
		t := entity.ArticleType(*req.Type)
		in.Type = &t
	}
	if req.CategoryIDs.Set || req.Categories.Set {
		in.Categories = artUC.Some(artUC.CategoryInput{
			IDs:   req.CategoryIDs.Items,
			Names: names(req.Categories.Items),
		})
	}
	return in
}

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  既存の記事を部分更新します。categoryIds または categories のキーを送るとカテゴリ集合を置き換えます（空配列または null で全解除、キー省略で変更なし）
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "記事ID (UUID)"
// @Param        article body updateRequest true "更新する記事情報"
// @Success      200 {object} DTO "更新後の記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid input"
// @Failure      404 {object} respond.ErrorBody "Not found - article or categories not found"
// @Failure      409 {object} respond.ErrorBody "Conflict - concurrent category creation"
// @Router       /articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	updated, err := h.Svc.Update(r.Context(), req.input(id))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(updated))
}
