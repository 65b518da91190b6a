package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/romashorodok/content-site/backend/internal/accessor"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/hashutils"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrUnableGetPosts   = errors.New("unable get posts")
	ErrInvalidPageParam = errors.New("invalid page params")
)

type PostSorting string

const (
	POST_SORTING_NEWEST PostSorting = "newest"
	POST_SORTING_OLDEST PostSorting = "oldest"
)

func (s PostSorting) cmsSort() string {
	if s == POST_SORTING_OLDEST {
		return cmsclient.SORT_PUBLISHED_ASC
	}
	return cmsclient.SORT_PUBLISHED_DESC
}

func postsEndpoint(contentType model.ContentType) (string, error) {
	switch contentType {
	case model.CONTENT_TYPE_BLOG:
		return cmsclient.ENDPOINT_POSTS, nil
	case model.CONTENT_TYPE_NEWSROOM:
		return cmsclient.ENDPOINT_NEWSROOMS, nil
	}
	return "", errors.Join(model.ErrUnknownContentType, fmt.Errorf("type: %q", contentType))
}

type GetPostsParams struct {
	Type        model.ContentType
	Sorting     PostSorting
	Category    string
	Tag         string
	Slug        string
	ExcludeSlug string
	Page        int
	PageSize    int
}

func (p GetPostsParams) cacheKey() string {
	return hashutils.GetCacheKey(string(p.Type),
		string(p.Sorting),
		p.Category,
		p.Tag,
		p.Slug,
		p.ExcludeSlug,
		strconv.Itoa(p.Page),
		strconv.Itoa(p.PageSize),
	)
}

func (p GetPostsParams) query() *cmsclient.Query {
	query := cmsclient.NewQuery().
		Populate().
		Sort(p.Sorting.cmsSort()).
		Page(p.Page, p.PageSize)
	if p.Category != "" {
		query.Filter("category.slug", cmsclient.FILTER_EQ, p.Category)
	}
	if p.Tag != "" {
		query.Filter("tags.slug", cmsclient.FILTER_EQ, p.Tag)
	}
	if p.Slug != "" {
		query.Filter("slug", cmsclient.FILTER_EQ, p.Slug)
	}
	if p.ExcludeSlug != "" {
		query.Filter("slug", cmsclient.FILTER_NOT_EQ, p.ExcludeSlug)
	}
	return query
}

type PostService struct {
	cms      *cmsclient.Client
	store    natsinfo.Store
	cache    *PostCache
	renderer *render.Renderer
	config   *ServiceConfig
	logger   *zap.Logger
	group    singleflight.Group
}

func (s *PostService) normalize(params GetPostsParams) (GetPostsParams, error) {
	if params.Sorting == "" {
		params.Sorting = POST_SORTING_NEWEST
	}
	if params.Page == 0 {
		params.Page = DEFAULT_PAGE
	}
	if params.PageSize == 0 {
		params.PageSize = s.config.PageSize
	}
	if params.Page < 1 || params.PageSize < 1 || params.PageSize > MAX_PAGE_SIZE {
		return params, errors.Join(ErrInvalidPageParam, fmt.Errorf("page: %d page_size: %d", params.Page, params.PageSize))
	}
	return params, nil
}

func (s *PostService) cachedPage(key string) (model.PostsPage, bool) {
	data, err := s.store.Get(key)
	if err != nil {
		if !errors.Is(err, natsinfo.ErrCacheMiss) {
			s.logger.Warn("unable read page cache", zap.String("key", key), zap.Error(err))
		}
		return model.PostsPage{}, false
	}
	var page model.PostsPage
	if err := json.Unmarshal(data, &page); err != nil {
		s.logger.Warn("unable decode cached page", zap.String("key", key), zap.Error(err))
		return model.PostsPage{}, false
	}
	return page, true
}

func (s *PostService) storePage(key string, page model.PostsPage) {
	data, err := json.Marshal(&page)
	if err == nil {
		err = s.store.Put(key, data)
	}
	if err != nil {
		s.logger.Warn("unable store page cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *PostService) fetchPosts(ctx context.Context, params GetPostsParams) (model.PostsPage, error) {
	endpoint, err := postsEndpoint(params.Type)
	if err != nil {
		return model.PostsPage{}, err
	}

	envelope, err := s.cms.Posts(ctx, endpoint, params.query())
	if err != nil {
		return model.PostsPage{}, errors.Join(ErrUnableGetPosts, err)
	}

	posts, err := accessor.PostsFromRecords(s.renderer, params.Type, envelope.Data)
	if err != nil {
		s.logger.Warn("skipped post records", zap.String("type", string(params.Type)), zap.Error(err))
	}

	page := model.PostsPage{
		Posts:      posts,
		Pagination: accessor.PaginationFromMeta(envelope.Meta),
	}
	s.cache.Merge(params.Type, posts)
	return page, nil
}

func (s *PostService) loadPage(ctx context.Context, params GetPostsParams, useCache bool) (model.PostsPage, error) {
	params, err := s.normalize(params)
	if err != nil {
		return model.PostsPage{}, err
	}
	if !params.Type.Valid() {
		return model.PostsPage{}, errors.Join(model.ErrUnknownContentType, fmt.Errorf("type: %q", params.Type))
	}

	key := params.cacheKey()
	if useCache {
		if page, ok := s.cachedPage(key); ok {
			s.cache.Merge(params.Type, page.Posts)
			return page, nil
		}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		page, err := s.fetchPosts(context.WithoutCancel(ctx), params)
		if err != nil {
			return nil, err
		}
		s.storePage(key, page)
		return page, nil
	})
	if err != nil {
		return model.PostsPage{}, err
	}
	return result.(model.PostsPage), nil
}

// GetPosts returns one page of posts. Every distinct parameter set is fetched once and then
// served from the page store until it expires or the CMS reports a change.
func (s *PostService) GetPosts(ctx context.Context, params GetPostsParams) (model.PostsPage, error) {
	return s.loadPage(ctx, params, true)
}

// RefreshPosts fetches the page from the CMS and overwrites the stored copy.
func (s *PostService) RefreshPosts(ctx context.Context, params GetPostsParams) (model.PostsPage, error) {
	return s.loadPage(ctx, params, false)
}

// GetPost serves a post from the slug cache when it was already fetched, list pages
// included, and asks the CMS otherwise.
func (s *PostService) GetPost(ctx context.Context, contentType model.ContentType, slug string) (model.Post, error) {
	if !contentType.Valid() {
		return model.NilPost, errors.Join(model.ErrUnknownContentType, fmt.Errorf("type: %q", contentType))
	}
	if post, ok := s.cache.Get(contentType, slug); ok {
		return post, nil
	}

	key := fmt.Sprintf("post.%s.%s", contentType, slug)
	result, err, _ := s.group.Do(key, func() (any, error) {
		page, err := s.fetchPosts(context.WithoutCancel(ctx), GetPostsParams{
			Type:     contentType,
			Sorting:  POST_SORTING_NEWEST,
			Slug:     slug,
			Page:     DEFAULT_PAGE,
			PageSize: 1,
		})
		if err != nil {
			if errors.Is(err, cmsclient.ErrNotFound) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		if len(page.Posts) == 0 {
			return nil, ErrPostNotFound
		}
		return page.Posts[0], nil
	})
	if err != nil {
		return model.NilPost, err
	}
	return result.(model.Post), nil
}

// RelatedPosts returns the newest posts of the same category, without the post itself.
func (s *PostService) RelatedPosts(ctx context.Context, post model.Post) ([]model.Post, error) {
	params := GetPostsParams{
		Type:        post.Type,
		ExcludeSlug: post.Slug,
		PageSize:    s.config.RelatedPosts,
	}
	if post.Category != nil {
		params.Category = post.Category.Slug
	}
	page, err := s.GetPosts(ctx, params)
	if err != nil {
		return nil, err
	}
	return page.Posts, nil
}

// CachedPosts returns the newest posts already fetched by any list or detail request,
// without asking the CMS.
func (s *PostService) CachedPosts(contentType model.ContentType, limit int) []model.Post {
	return s.cache.Latest(contentType, limit)
}

// Invalidate forgets a post, or every post of the type when slug is empty, and drops the
// stored pages of the type since any of them may list it.
func (s *PostService) Invalidate(contentType model.ContentType, slug string) error {
	s.cache.Invalidate(contentType, slug)
	return s.store.Purge(string(contentType))
}

type NewPostServiceParams struct {
	fx.In

	CMS      *cmsclient.Client
	Store    natsinfo.Store
	Cache    *PostCache
	Renderer *render.Renderer
	Config   *ServiceConfig
	Logger   *zap.Logger
}

func NewPostService(params NewPostServiceParams) *PostService {
	return &PostService{
		cms:      params.CMS,
		store:    params.Store,
		cache:    params.Cache,
		renderer: params.Renderer,
		config:   params.Config,
		logger:   params.Logger.Named("posts"),
	}
}
