package cmsclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{BaseURL: server.URL, Token: "secret", Timeout: time.Second}, nil)
	require.NoError(t, err)
	return client
}

func TestClientPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ENDPOINT_POSTS, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "hello", r.URL.Query().Get("filters[slug][$eq]"))

		fmt.Fprint(w, `{
			"data": [{
				"id": 1,
				"slug": "hello",
				"title": "Hello",
				"publishedAt": "2024-01-02T10:00:00.000Z",
				"featuredImage": {"url": "/uploads/hello.png", "width": 1200, "height": 630},
				"tags": [{"name": "Release", "slug": "release"}]
			}],
			"meta": {"pagination": {"page": 1, "pageSize": 9, "pageCount": 1, "total": 1}}
		}`)
	})

	envelope, err := client.Posts(context.Background(), ENDPOINT_POSTS, NewQuery().Filter("slug", FILTER_EQ, "hello"))
	require.NoError(t, err)
	require.Len(t, envelope.Data, 1)

	post := envelope.Data[0]
	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.FeaturedImage)
	assert.Equal(t, 1200, post.FeaturedImage.Width)
	assert.Equal(t, []Taxonomy{{Name: "Release", Slug: "release"}}, post.Tags)
	assert.Equal(t, 1, envelope.Meta.Pagination.Total)
}

func TestClientStatusErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ENDPOINT_NEWSROOMS:
			http.NotFound(w, r)
		case ENDPOINT_POSTS:
			http.Error(w, "boom", http.StatusBadGateway)
		default:
			fmt.Fprint(w, `{"data": "not a list"}`)
		}
	})

	_, err := client.Posts(context.Background(), ENDPOINT_NEWSROOMS, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.Posts(context.Background(), ENDPOINT_POSTS, nil)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	_, err = client.FAQSections(context.Background(), nil)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestClientDirectoryWalksPages(t *testing.T) {
	var requested []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("pagination[page]")
		requested = append(requested, page)
		assert.Equal(t, strconv.Itoa(MAX_PAGE_SIZE), r.URL.Query().Get("pagination[pageSize]"))
		fmt.Fprintf(w, `{"data": [{"slug": "entry-%s", "name": "Entry %s"}], "meta": {"pagination": {"page": %s, "pageCount": 3}}}`, page, page, page)
	})

	records, err := client.Directory(context.Background(), ENDPOINT_SUPPORTED_CHAINS, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, requested)
	require.Len(t, records, 3)
	assert.Equal(t, "Entry 3", records[2].DisplayName())
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(&Config{BaseURL: "cms:1337"}, nil)
	assert.ErrorIs(t, err, ErrInvalidCMSBaseURL)
}
