package handler

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/httputils"
)

type GetPostsQueryParams struct {
	Type     model.ContentType
	Sorting  service.PostSorting
	Category string
	Tag      string
	Page     int
	PageSize int
}

type GetPostUrlParams struct {
	Type model.ContentType
	Slug string
}

type PostHandler interface {
	GetPosts(w http.ResponseWriter, r *http.Request, queryParams *GetPostsQueryParams)
	GetPost(w http.ResponseWriter, r *http.Request, params *GetPostUrlParams)
}

type postParamsWrapperHandler struct {
	handler         PostHandler
	defaultPageSize int
}

func (h *postParamsWrapperHandler) GetPost(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.handler.GetPost(w, r, &GetPostUrlParams{
			Type: contentType,
			Slug: chi.URLParam(r, "slug"),
		})
	}
}

func (h *postParamsWrapperHandler) GetPosts(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sorting, err := GetSortingQuery(r)
		if err != nil {
			contentErrHandler(w, err)
			return
		}

		page, err := GetPageQuery(r)
		if err != nil {
			contentErrHandler(w, err)
			return
		}

		pageSize, err := GetPageSizeQuery(r, h.defaultPageSize)
		if err != nil {
			contentErrHandler(w, err)
			return
		}

		h.handler.GetPosts(w, r, &GetPostsQueryParams{
			Type:     contentType,
			Sorting:  sorting,
			Category: getTextQuery(r, CATEGORY_QUERY_PARAM_NAME),
			Tag:      getTextQuery(r, TAG_QUERY_PARAM_NAME),
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *postParamsWrapperHandler) OnRouter(router http.Handler) {
	switch r := router.(type) {
	case *chi.Mux:
		r.Get(BASE_URL+"/posts", h.GetPosts(model.CONTENT_TYPE_BLOG))
		r.Get(BASE_URL+"/posts/{slug}", h.GetPost(model.CONTENT_TYPE_BLOG))
		r.Get(BASE_URL+"/newsroom", h.GetPosts(model.CONTENT_TYPE_NEWSROOM))
		r.Get(BASE_URL+"/newsroom/{slug}", h.GetPost(model.CONTENT_TYPE_NEWSROOM))
	}
}

var _ httputils.Handler = (*postParamsWrapperHandler)(nil)

func newPostParamsWrapper(handler PostHandler, defaultPageSize int) *postParamsWrapperHandler {
	return &postParamsWrapperHandler{
		handler:         handler,
		defaultPageSize: defaultPageSize,
	}
}
