// Package cmstest runs an in-process CMS that answers the REST queries the client sends.
package cmstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/romashorodok/content-site/pkg/cmsclient"
)

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	posts       map[string][]cmsclient.PostRecord
	collections map[string][]any
	failures    map[string]int
	requests    map[string][]url.Values
}

func NewServer() *Server {
	s := &Server{
		posts:       make(map[string][]cmsclient.PostRecord),
		collections: make(map[string][]any),
		failures:    make(map[string]int),
		requests:    make(map[string][]url.Values),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) Client() *cmsclient.Client {
	client, err := cmsclient.NewClient(&cmsclient.Config{BaseURL: s.URL, Timeout: 5 * time.Second}, nil)
	if err != nil {
		panic(err)
	}
	return client
}

func (s *Server) SetPosts(endpoint string, posts ...cmsclient.PostRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[endpoint] = posts
}

// SetCollection serves records as a plain collection, paginated but never filtered.
func (s *Server) SetCollection(endpoint string, records ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[endpoint] = records
}

// Fail answers every request to the endpoint with status. Zero restores normal answers.
func (s *Server) Fail(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, endpoint)
		return
	}
	s.failures[endpoint] = status
}

// Requests returns the query of every request made to the endpoint so far.
func (s *Server) Requests(endpoint string) []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.requests[endpoint]...)
}

func (s *Server) RequestCount(endpoint string) int {
	return len(s.Requests(endpoint))
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	s.mu.Lock()
	s.requests[r.URL.Path] = append(s.requests[r.URL.Path], query)
	status, failing := s.failures[r.URL.Path]
	posts, isPosts := s.posts[r.URL.Path]
	records, isCollection := s.collections[r.URL.Path]
	s.mu.Unlock()

	switch {
	case failing:
		http.Error(w, http.StatusText(status), status)
	case isPosts:
		filtered := filterPosts(posts, query)
		items := make([]any, 0, len(filtered))
		for _, post := range filtered {
			items = append(items, post)
		}
		writePage(w, items, query)
	case isCollection:
		writePage(w, records, query)
	default:
		http.NotFound(w, r)
	}
}

func filterPosts(posts []cmsclient.PostRecord, query url.Values) []cmsclient.PostRecord {
	result := make([]cmsclient.PostRecord, 0, len(posts))
	for _, post := range posts {
		if value := query.Get("filters[slug][$eq]"); value != "" && post.Slug != value {
			continue
		}
		if value := query.Get("filters[slug][$ne]"); value != "" && post.Slug == value {
			continue
		}
		if value := query.Get("filters[category][slug][$eq]"); value != "" && (post.Category == nil || post.Category.Slug != value) {
			continue
		}
		if value := query.Get("filters[tags][slug][$eq]"); value != "" && !hasTag(post, value) {
			continue
		}
		result = append(result, post)
	}

	switch query.Get("sort") {
	case cmsclient.SORT_PUBLISHED_ASC:
		sort.SliceStable(result, func(i, j int) bool { return result[i].PublishedAt < result[j].PublishedAt })
	case cmsclient.SORT_PUBLISHED_DESC:
		sort.SliceStable(result, func(i, j int) bool { return result[i].PublishedAt > result[j].PublishedAt })
	}
	return result
}

func hasTag(post cmsclient.PostRecord, slug string) bool {
	for _, tag := range post.Tags {
		if tag.Slug == slug {
			return true
		}
	}
	return false
}

func intParam(query url.Values, key string, fallback int) int {
	value, err := strconv.Atoi(query.Get(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func writePage(w http.ResponseWriter, records []any, query url.Values) {
	page := intParam(query, "pagination[page]", 1)
	pageSize := intParam(query, "pagination[pageSize]", 25)

	total := len(records)
	pageCount := (total + pageSize - 1) / pageSize
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	data := records[start:end]
	if data == nil {
		data = []any{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": data,
		"meta": cmsclient.Meta{Pagination: cmsclient.Pagination{
			Page:      page,
			PageSize:  pageSize,
			PageCount: pageCount,
			Total:     total,
		}},
	})
}

// Post builds a published post record.
func Post(id int, slug, title, publishedAt string) cmsclient.PostRecord {
	return cmsclient.PostRecord{
		ID:          id,
		Slug:        slug,
		Title:       title,
		Description: title + " description",
		Content:     "## " + title + "\n\nBody of " + strings.ToLower(title) + ".",
		PublishedAt: publishedAt,
	}
}
