package handler

import (
	"net/http"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/paginationutils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type postHandler struct {
	postService *service.PostService
	logger      *zap.Logger
}

type getPostsResponse struct {
	Posts      []model.Post                     `json:"posts"`
	Pagination model.Pagination                 `json:"pagination"`
	Pages      []paginationutils.PaginationLink `json:"pages"`
	Next       *paginationutils.PaginationLink  `json:"next,omitempty"`
	Prev       *paginationutils.PaginationLink  `json:"prev,omitempty"`
}

type getPostResponse struct {
	Post    model.Post   `json:"post"`
	Related []model.Post `json:"related"`
}

func (hand *postHandler) GetPosts(w http.ResponseWriter, r *http.Request, queryParams *GetPostsQueryParams) {
	page, err := hand.postService.GetPosts(r.Context(), service.GetPostsParams{
		Type:     queryParams.Type,
		Sorting:  queryParams.Sorting,
		Category: queryParams.Category,
		Tag:      queryParams.Tag,
		Page:     queryParams.Page,
		PageSize: queryParams.PageSize,
	})
	switch {
	case err == nil:
	case isClientError(err):
		contentErrHandler(w, err)
		return
	default:
		// The list degrades to its empty state when the CMS is unavailable.
		hand.logger.Warn("unable get posts", zap.String("type", string(queryParams.Type)), zap.Error(err))
		page = model.PostsPage{Posts: []model.Post{}, Pagination: model.Pagination{Page: queryParams.Page, PageSize: queryParams.PageSize}}
	}

	pagination := paginationutils.NewPaginationView(*r.URL, paginationutils.NewPaginationViewParams{
		PageCount:          page.Pagination.PageCount,
		PageQueryParamName: PAGE_QUERY_PARAM_NAME,
	})

	pagesLinks, err := pagination.PagesLinks(queryParams.Page)
	if err != nil {
		contentErrHandler(w, err)
		return
	}
	if pagesLinks == nil {
		pagesLinks = []paginationutils.PaginationLink{}
	}

	httputils.WriteJSON(w, http.StatusOK, &getPostsResponse{
		Posts:      page.Posts,
		Pagination: page.Pagination,
		Pages:      pagesLinks,
		Next:       pagination.Next(queryParams.Page),
		Prev:       pagination.Prev(queryParams.Page),
	})
}

func (hand *postHandler) GetPost(w http.ResponseWriter, r *http.Request, params *GetPostUrlParams) {
	post, err := hand.postService.GetPost(r.Context(), params.Type, params.Slug)
	if err != nil {
		contentErrHandler(w, err)
		return
	}

	related, err := hand.postService.RelatedPosts(r.Context(), post)
	if err != nil {
		hand.logger.Warn("unable get related posts", zap.String("slug", post.Slug), zap.Error(err))
	}
	if related == nil {
		related = []model.Post{}
	}

	httputils.WriteJSON(w, http.StatusOK, &getPostResponse{Post: post, Related: related})
}

var _ PostHandler = (*postHandler)(nil)

type NewPostHandlerParams struct {
	fx.In

	PostService *service.PostService
	Config      *service.ServiceConfig
	Logger      *zap.Logger
}

func NewPostHandler(params NewPostHandlerParams) *postParamsWrapperHandler {
	return newPostParamsWrapper(&postHandler{
		postService: params.PostService,
		logger:      params.Logger.Named("api.posts"),
	}, params.Config.PageSize)
}
