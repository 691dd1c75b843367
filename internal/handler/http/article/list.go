package article

import (
	"log/slog"
	"net/http"
	"strings"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/logging"
	artUC "content-api/internal/usecase/article"
)

type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得（ページネーション対応）
// @Description  記事をカテゴリ付きでページ単位に取得します。categoryId を指定するとそのカテゴリに属する記事に絞り込みます
// @Tags         articles
// @Produce      json
// @Param        page        query  int     false  "ページ番号 (1-based)" default(1)
// @Param        limit       query  int     false  "1ページあたりの件数" default(10) maximum(100)
// @Param        sortBy      query  string  false  "createdAt, updatedAt, title, type"
// @Param        sortOrder   query  string  false  "asc または desc" default(desc)
// @Param        categoryId  query  string  false  "カテゴリID (UUID)"
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き記事一覧"
// @Failure      400 {object} respond.ErrorBody "Invalid query parameters"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.logger())

	params, err := pagination.ParseQueryParams(r, h.Svc.Pagination.OrDefault())
	if err != nil {
		pagination.StartList(ctx, logger, "articles", params).Fail(http.StatusBadRequest, err)
		respond.FromError(w, &entity.ValidationError{Field: "query", Message: strings.TrimPrefix(err.Error(), "invalid query parameter: ")})
		return
	}
	trace := pagination.StartList(ctx, logger, "articles", params)

	result, err := h.Svc.List(ctx, artUC.ListInput{
		Params:     params,
		CategoryID: strings.TrimSpace(r.URL.Query().Get("categoryId")),
	})
	if err != nil {
		trace.Fail(respond.StatusCode(err), err)
		respond.FromError(w, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, a := range result.Data {
		dtos = append(dtos, toDTO(a))
	}
	trace.Done(result.Meta, len(dtos))
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Meta))
}

func (h ListHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}
