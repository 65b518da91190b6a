package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/cmsclient/cmstest"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "webhook-secret"

type testAPI struct {
	cms    *cmstest.Server
	router *chi.Mux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cms := cmstest.NewServer()
	t.Cleanup(cms.Close)

	client := cms.Client()
	renderer := render.NewRenderer()
	config := &service.ServiceConfig{PageSize: 2, SnapshotTTL: time.Minute, RelatedPosts: 3}
	logger := zap.NewNop()

	posts := service.NewPostService(service.NewPostServiceParams{
		CMS:      client,
		Store:    natsinfo.NewMemoryStore(time.Minute),
		Cache:    service.NewPostCache(),
		Renderer: renderer,
		Config:   config,
		Logger:   logger,
	})
	directories := service.NewDirectoryService(service.NewDirectoryServiceParams{CMS: client, Renderer: renderer, Config: config, Logger: logger})
	faq := service.NewFAQService(service.NewFAQServiceParams{CMS: client, Renderer: renderer, Config: config})
	legal := service.NewLegalService(service.NewLegalServiceParams{CMS: client, Renderer: renderer, Config: config})
	invalidator := service.NewCacheInvalidator(service.NewCacheInvalidatorParams{
		Posts:       posts,
		Directories: directories,
		FAQ:         faq,
		Legal:       legal,
		Logger:      logger,
	})
	publisher, err := service.NewEventPublisher(service.NewEventPublisherParams{Invalidator: invalidator, Logger: logger})
	require.NoError(t, err)

	router := chi.NewRouter()
	handlers := []httputils.Handler{
		NewPostHandler(NewPostHandlerParams{PostService: posts, Config: config, Logger: logger}),
		NewDirectoryHandler(NewDirectoryHandlerParams{DirectoryService: directories, FAQService: faq, LegalService: legal}),
		NewWebhookHandler(NewWebhookHandlerParams{Config: &WebhookConfig{Secret: testWebhookSecret}, Publisher: publisher, Logger: logger}),
	}
	for _, handler := range handlers {
		handler.OnRouter(router)
	}
	return &testAPI{cms: cms, router: router}
}

func (a *testAPI) do(t *testing.T, req *http.Request, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func (a *testAPI) get(t *testing.T, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil), out)
}

func seedPosts(cms *cmstest.Server, endpoint string, count int) {
	records := make([]cmsclient.PostRecord, 0, count)
	for i := 1; i <= count; i++ {
		publishedAt := time.Date(2024, 3, i, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
		records = append(records, cmstest.Post(i, "post-"+string(rune('0'+i)), "Post "+string(rune('0'+i)), publishedAt))
	}
	cms.SetPosts(endpoint, records...)
}

func TestGetPostsFollowsNextLinks(t *testing.T) {
	api := newTestAPI(t)
	seedPosts(api.cms, cmsclient.ENDPOINT_POSTS, 6)

	var response getPostsResponse
	rec := api.get(t, BASE_URL+"/posts", &response)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, response.Pagination.PageCount)
	assert.Nil(t, response.Prev)
	require.NotNil(t, response.Next)

	for i := 0; i < 2; i++ {
		next, err := url.Parse(response.Next.Link)
		require.NoError(t, err)

		response = getPostsResponse{}
		rec = api.get(t, next.RequestURI(), &response)
		require.Equal(t, http.StatusOK, rec.Code)
		if i == 0 {
			require.NotNil(t, response.Next)
		}
	}

	assert.Equal(t, 3, response.Pagination.Page)
	assert.Nil(t, response.Next)
	require.NotNil(t, response.Prev)
	require.Len(t, response.Posts, 2)
	assert.Equal(t, "post-2", response.Posts[0].Slug)

	requests := api.cms.Requests(cmsclient.ENDPOINT_POSTS)
	require.Len(t, requests, 3)
	assert.Equal(t, "3", requests[2].Get("pagination[page]"))
}

func TestGetPostsPagesLinks(t *testing.T) {
	api := newTestAPI(t)
	seedPosts(api.cms, cmsclient.ENDPOINT_NEWSROOMS, 4)

	var response getPostsResponse
	rec := api.get(t, BASE_URL+"/newsroom?sort=oldest&page=2", &response)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, response.Pages, 2)
	assert.True(t, response.Pages[1].Current)
	assert.Equal(t, "post-3", response.Posts[0].Slug)
	assert.Contains(t, response.Pages[0].Link, "sort=oldest")
}

func TestGetPostsInvalidParams(t *testing.T) {
	api := newTestAPI(t)

	for _, target := range []string{
		BASE_URL + "/posts?sort=popular",
		BASE_URL + "/posts?page=zero",
		BASE_URL + "/posts?page_size=-1",
		BASE_URL + "/posts?page_size=500",
	} {
		rec := api.get(t, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body httputils.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body.Message)
	}
	assert.Zero(t, api.cms.RequestCount(cmsclient.ENDPOINT_POSTS))
}

func TestGetPostsPageOutOfRange(t *testing.T) {
	api := newTestAPI(t)
	seedPosts(api.cms, cmsclient.ENDPOINT_POSTS, 2)

	rec := api.get(t, BASE_URL+"/posts?page=4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPostsCMSDownRendersEmpty(t *testing.T) {
	api := newTestAPI(t)
	api.cms.Fail(cmsclient.ENDPOINT_POSTS, http.StatusInternalServerError)

	var response getPostsResponse
	rec := api.get(t, BASE_URL+"/posts", &response)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, response.Posts)
	assert.NotNil(t, response.Posts)
	assert.Empty(t, response.Pages)
}

func TestGetPost(t *testing.T) {
	api := newTestAPI(t)
	seedPosts(api.cms, cmsclient.ENDPOINT_POSTS, 3)

	var response getPostResponse
	rec := api.get(t, BASE_URL+"/posts/post-2", &response)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post 2", response.Post.Title)
	assert.Contains(t, string(response.Post.Body.HTML), `<h2 id="post-2">`)
	assert.Len(t, response.Related, 2)

	rec = api.get(t, BASE_URL+"/posts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDirectory(t *testing.T) {
	api := newTestAPI(t)
	api.cms.SetCollection(cmsclient.ENDPOINT_SUPPORTED_WALLETS,
		cmsclient.DirectoryRecord{ID: 1, Slug: "ledger", Title: "Ledger", Category: "Hardware", Order: 1},
		cmsclient.DirectoryRecord{ID: 2, Slug: "rabby", Title: "Rabby", Category: "Browser", Order: 2,
			Tags: []cmsclient.Taxonomy{{Name: "Extension", Slug: "extension"}}},
	)

	var response getDirectoryResponse
	rec := api.get(t, BASE_URL+"/directories/wallets?q=exten", &response)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "Rabby", response.Entries[0].Title)
	assert.Equal(t, []string{"Browser", "Hardware"}, response.Categories)

	response = getDirectoryResponse{}
	rec = api.get(t, BASE_URL+"/directories/wallets?category=hardware", &response)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "Ledger", response.Entries[0].Title)

	var entry model.DirectoryEntry
	rec = api.get(t, BASE_URL+"/directories/wallets/rabby", &entry)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Browser", entry.Category)

	assert.Equal(t, http.StatusNotFound, api.get(t, BASE_URL+"/directories/wallets/metamask", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.get(t, BASE_URL+"/directories/exchanges", nil).Code)
}

func TestGetLegalDocument(t *testing.T) {
	api := newTestAPI(t)
	api.cms.SetCollection(cmsclient.ENDPOINT_PRIVACY_SECTIONS,
		cmsclient.LegalSectionRecord{ID: 1, Slug: "data", Title: "Data we collect", Content: "Nothing.", Order: 1},
	)

	var document model.LegalDocument
	rec := api.get(t, BASE_URL+"/legal/privacy", &document)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.LEGAL_PRIVACY, document.Kind)
	assert.Equal(t, []model.Heading{{ID: "data", Text: "Data we collect", Level: 2}}, document.Contents)

	assert.Equal(t, http.StatusNotFound, api.get(t, BASE_URL+"/legal/cookies", nil).Code)
}

func webhookRequest(body, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, BASE_URL+"/webhooks/cms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCMSWebhookInvalidatesCachedPost(t *testing.T) {
	api := newTestAPI(t)
	seedPosts(api.cms, cmsclient.ENDPOINT_POSTS, 1)

	var response getPostResponse
	require.Equal(t, http.StatusOK, api.get(t, BASE_URL+"/posts/post-1", &response).Code)
	assert.Equal(t, "Post 1", response.Post.Title)

	api.cms.SetPosts(cmsclient.ENDPOINT_POSTS, cmstest.Post(1, "post-1", "Post 1 edited", "2024-03-01T12:00:00Z"))

	rec := api.do(t, webhookRequest(`{"event":"entry.update","model":"post","entry":{"id":1,"slug":"post-1"}}`, testWebhookSecret), nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	response = getPostResponse{}
	require.Equal(t, http.StatusOK, api.get(t, BASE_URL+"/posts/post-1", &response).Code)
	assert.Equal(t, "Post 1 edited", response.Post.Title)
}

func TestCMSWebhookRejections(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, webhookRequest(`{"event":"entry.update","model":"post"}`, ""), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, webhookRequest(`{"event":"entry.update","model":"post"}`, "wrong"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, webhookRequest(`{"event":`, testWebhookSecret), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, webhookRequest(`{"model":"post"}`, testWebhookSecret), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, webhookRequest(`{"event":"entry.create","model":"user"}`, testWebhookSecret), nil)
	assert.Equal(t, http.StatusAccepted, rec.Code, "events of other models are acknowledged")
}
