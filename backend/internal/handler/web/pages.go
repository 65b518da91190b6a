package web

import (
	"errors"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	handler "github.com/romashorodok/content-site/backend/internal/handler/v1"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/paginationutils"
	"github.com/romashorodok/content-site/pkg/routeutils"
	"github.com/romashorodok/content-site/pkg/scrollspy"
	"github.com/romashorodok/content-site/pkg/searchutils"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type pageData struct {
	SiteName    string
	Title       string
	Heading     string
	Description string
	Crumbs      []routeutils.Crumb
	EmptyState  string
	Content     any
}

type homeContent struct {
	Blog     []model.Post
	Newsroom []model.Post
}

type postsContent struct {
	Posts    []model.Post
	Sorting  service.PostSorting
	Category string
	Tag      string
	Pages    []paginationutils.PaginationLink
	Next     *paginationutils.PaginationLink
	Prev     *paginationutils.PaginationLink
}

type postContent struct {
	Post    model.Post
	Related []model.Post
}

type faqContent struct {
	Query          string
	Sections       []model.FAQSection
	Active         string
	Offset         float64
	SuppressMillis int64
}

type directoryContent struct {
	Base       string
	Linked     bool
	Query      string
	Category   string
	Categories []string
	Entries    []model.DirectoryEntry
}

type directoryRoute struct {
	path string
	kind model.DirectoryKind
	// Entries have their own pages.
	linked bool
}

var directoryRoutes = []directoryRoute{
	{path: "/supported-chains", kind: model.DIRECTORY_CHAINS, linked: true},
	{path: "/supported-wallets", kind: model.DIRECTORY_WALLETS, linked: true},
	{path: "/supported-protocols", kind: model.DIRECTORY_PROTOCOLS, linked: true},
	{path: "/discover", kind: model.DIRECTORY_DISCOVER},
}

type pagesHandler struct {
	site             *SiteConfig
	templates        templates
	postService      *service.PostService
	directoryService *service.DirectoryService
	faqService       *service.FAQService
	legalService     *service.LegalService
	logger           *zap.Logger
}

func (h *pagesHandler) newPage(r *http.Request, labels map[string]string, content any) *pageData {
	crumbs := routeutils.Breadcrumbs(r.URL.Path, labels)
	return &pageData{
		SiteName:   h.site.Name,
		Title:      routeutils.Title(crumbs, h.site.Name),
		Heading:    crumbs[len(crumbs)-1].Label,
		Crumbs:     crumbs,
		EmptyState: h.site.EmptyStateMessage,
		Content:    content,
	}
}

func (h *pagesHandler) render(w http.ResponseWriter, status int, name string, data *pageData) {
	if err := h.templates.render(w, status, name, data); err != nil {
		h.logger.Error("unable render page", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound answers JSON under the API prefix and the not-found page elsewhere.
func (h *pagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, handler.BASE_URL+"/") {
		httputils.WriteErrorResponse(w, http.StatusNotFound, "not found")
		return
	}
	data := h.newPage(r, nil, nil)
	data.Title = "Page not found | " + h.site.Name
	data.Crumbs = nil
	h.render(w, http.StatusNotFound, TEMPLATE_NOT_FOUND, data)
}

func (h *pagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	var content homeContent

	// Each half of the page falls back on its own to posts seen earlier, then to the empty state.
	group, ctx := errgroup.WithContext(r.Context())
	latest := func(contentType model.ContentType, out *[]model.Post) func() error {
		return func() error {
			page, err := h.postService.GetPosts(ctx, service.GetPostsParams{Type: contentType, PageSize: HOME_POSTS_COUNT})
			if err != nil {
				h.logger.Warn("unable get latest posts", zap.String("type", string(contentType)), zap.Error(err))
				*out = h.postService.CachedPosts(contentType, HOME_POSTS_COUNT)
				return nil
			}
			*out = page.Posts
			return nil
		}
	}
	group.Go(latest(model.CONTENT_TYPE_BLOG, &content.Blog))
	group.Go(latest(model.CONTENT_TYPE_NEWSROOM, &content.Newsroom))
	_ = group.Wait()

	h.render(w, http.StatusOK, TEMPLATE_HOME, h.newPage(r, nil, &content))
}

func (h *pagesHandler) Posts(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sorting, sortErr := handler.GetSortingQuery(r)
		page, pageErr := handler.GetPageQuery(r)
		if err := errors.Join(sortErr, pageErr); err != nil {
			h.NotFound(w, r)
			return
		}

		content := &postsContent{
			Sorting:  sorting,
			Category: strings.TrimSpace(r.URL.Query().Get(handler.CATEGORY_QUERY_PARAM_NAME)),
			Tag:      strings.TrimSpace(r.URL.Query().Get(handler.TAG_QUERY_PARAM_NAME)),
		}

		result, err := h.postService.GetPosts(r.Context(), service.GetPostsParams{
			Type:     contentType,
			Sorting:  sorting,
			Category: content.Category,
			Tag:      content.Tag,
			Page:     page,
		})
		if err != nil {
			h.logger.Warn("unable get posts", zap.String("type", string(contentType)), zap.Int("page", page), zap.Error(err))
		}
		content.Posts = result.Posts

		pagination := paginationutils.NewPaginationView(*r.URL, paginationutils.NewPaginationViewParams{
			PageCount:          result.Pagination.PageCount,
			PageQueryParamName: handler.PAGE_QUERY_PARAM_NAME,
		})
		if content.Pages, err = pagination.PagesLinks(page); err != nil {
			h.NotFound(w, r)
			return
		}
		content.Next = pagination.Next(page)
		content.Prev = pagination.Prev(page)

		h.render(w, http.StatusOK, TEMPLATE_POSTS, h.newPage(r, nil, content))
	}
}

func (h *pagesHandler) Post(contentType model.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		post, err := h.postService.GetPost(r.Context(), contentType, slug)
		if err != nil {
			if !errors.Is(err, service.ErrPostNotFound) {
				h.logger.Warn("unable get post", zap.String("slug", slug), zap.Error(err))
			}
			h.NotFound(w, r)
			return
		}

		related, err := h.postService.RelatedPosts(r.Context(), post)
		if err != nil {
			h.logger.Warn("unable get related posts", zap.String("slug", slug), zap.Error(err))
		}

		data := h.newPage(r, map[string]string{slug: post.Title}, &postContent{Post: post, Related: related})
		data.Description = post.Description
		h.render(w, http.StatusOK, TEMPLATE_POST, data)
	}
}

func (h *pagesHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get(handler.SEARCH_QUERY_PARAM_NAME))
	sections, err := h.faqService.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("unable get faq", zap.Error(err))
	}

	active := ""
	if len(sections) > 0 {
		active = sections[0].Slug
		requested := r.URL.Query().Get("section")
		for _, section := range sections {
			if section.Slug == requested {
				active = requested
			}
		}
	}

	h.render(w, http.StatusOK, TEMPLATE_FAQ, h.newPage(r, map[string]string{"faq": "FAQ"}, &faqContent{
		Query:          query,
		Sections:       sections,
		Active:         active,
		Offset:         scrollspy.DEFAULT_OFFSET,
		SuppressMillis: scrollspy.DEFAULT_SUPPRESS.Milliseconds(),
	}))
}

func (h *pagesHandler) Directory(route directoryRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := &directoryContent{
			Base:     route.path,
			Linked:   route.linked,
			Query:    strings.TrimSpace(r.URL.Query().Get(handler.SEARCH_QUERY_PARAM_NAME)),
			Category: strings.TrimSpace(r.URL.Query().Get(handler.CATEGORY_QUERY_PARAM_NAME)),
		}
		if content.Category == "" {
			content.Category = searchutils.ALL_CATEGORIES
		}

		entries, err := h.directoryService.Search(r.Context(), route.kind, content.Query, content.Category)
		if err != nil {
			h.logger.Warn("unable get directory", zap.String("kind", string(route.kind)), zap.Error(err))
		}
		content.Entries = entries
		content.Categories, _ = h.directoryService.Categories(r.Context(), route.kind)

		h.render(w, http.StatusOK, TEMPLATE_DIRECTORY, h.newPage(r, nil, content))
	}
}

func (h *pagesHandler) DirectoryEntry(route directoryRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		entry, err := h.directoryService.Get(r.Context(), route.kind, slug)
		if err != nil {
			if !errors.Is(err, service.ErrEntryNotFound) {
				h.logger.Warn("unable get directory entry", zap.String("kind", string(route.kind)), zap.String("slug", slug), zap.Error(err))
			}
			h.NotFound(w, r)
			return
		}

		data := h.newPage(r, map[string]string{slug: entry.Title}, &entry)
		data.Description = entry.Description
		h.render(w, http.StatusOK, TEMPLATE_ENTRY, data)
	}
}

func (h *pagesHandler) Legal(kind model.LegalDocumentKind, heading string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		document, err := h.legalService.Document(r.Context(), kind)
		if err != nil {
			h.logger.Warn("unable get legal document", zap.String("document", string(kind)), zap.Error(err))
		}

		segment := strings.Trim(r.URL.Path, "/")
		h.render(w, http.StatusOK, TEMPLATE_LEGAL, h.newPage(r, map[string]string{segment: heading}, &document))
	}
}

func (h *pagesHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *pagesHandler) OnRouter(router http.Handler) {
	switch r := router.(type) {
	case *chi.Mux:
		r.NotFound(h.NotFound)
		r.Get("/healthz", h.Healthz)
		r.Handle(STATIC_PREFIX+"*", http.FileServer(http.FS(staticFS)))
		r.Get("/", h.Home)
		r.Get("/blog", h.Posts(model.CONTENT_TYPE_BLOG))
		r.Get("/blog/{slug}", h.Post(model.CONTENT_TYPE_BLOG))
		r.Get("/newsroom", h.Posts(model.CONTENT_TYPE_NEWSROOM))
		r.Get("/newsroom/{slug}", h.Post(model.CONTENT_TYPE_NEWSROOM))
		r.Get("/faq", h.FAQ)
		for _, route := range directoryRoutes {
			r.Get(route.path, h.Directory(route))
			if route.linked {
				r.Get(route.path+"/{slug}", h.DirectoryEntry(route))
			}
		}
		r.Get("/terms", h.Legal(model.LEGAL_TERMS, "Terms of Service"))
		r.Get("/privacy", h.Legal(model.LEGAL_PRIVACY, "Privacy Policy"))
	}
}

var _ httputils.Handler = (*pagesHandler)(nil)

type NewPagesHandlerParams struct {
	fx.In

	Site             *SiteConfig
	PostService      *service.PostService
	DirectoryService *service.DirectoryService
	FAQService       *service.FAQService
	LegalService     *service.LegalService
	Logger           *zap.Logger
}

func NewPagesHandler(params NewPagesHandlerParams) (*pagesHandler, error) {
	parsed, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &pagesHandler{
		site:             params.Site,
		templates:        parsed,
		postService:      params.PostService,
		directoryService: params.DirectoryService,
		faqService:       params.FAQService,
		legalService:     params.LegalService,
		logger:           params.Logger.Named("pages"),
	}, nil
}
