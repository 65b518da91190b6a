package service

import (
	"sort"
	"sync"

	"github.com/romashorodok/content-site/backend/internal/model"
)

// PostCache accumulates every post fetched so far, per content type and keyed by slug, so a
// detail page for a post already seen in a list does not go back to the CMS.
type PostCache struct {
	mu    sync.RWMutex
	posts map[model.ContentType][]model.Post
	index map[model.ContentType]map[string]int
}

func NewPostCache() *PostCache {
	return &PostCache{
		posts: make(map[model.ContentType][]model.Post),
		index: make(map[model.ContentType]map[string]int),
	}
}

func (c *PostCache) Get(contentType model.ContentType, slug string) (model.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[contentType][slug]
	if !ok {
		return model.NilPost, false
	}
	return c.posts[contentType][i], true
}

// Merge replaces cached posts that share a slug with a fresh one and appends the rest.
func (c *PostCache) Merge(contentType model.ContentType, posts []model.Post) {
	if len(posts) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	index, ok := c.index[contentType]
	if !ok {
		index = make(map[string]int)
		c.index[contentType] = index
	}
	for _, post := range posts {
		if i, ok := index[post.Slug]; ok {
			c.posts[contentType][i] = post
			continue
		}
		index[post.Slug] = len(c.posts[contentType])
		c.posts[contentType] = append(c.posts[contentType], post)
	}
}

// Latest returns up to limit cached posts, newest first. A limit below one returns all.
func (c *PostCache) Latest(contentType model.ContentType, limit int) []model.Post {
	c.mu.RLock()
	posts := append([]model.Post(nil), c.posts[contentType]...)
	c.mu.RUnlock()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// Invalidate drops one post, or the whole content type when slug is empty.
func (c *PostCache) Invalidate(contentType model.ContentType, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slug == "" {
		delete(c.posts, contentType)
		delete(c.index, contentType)
		return
	}

	i, ok := c.index[contentType][slug]
	if !ok {
		return
	}
	posts := c.posts[contentType]
	posts = append(posts[:i], posts[i+1:]...)
	c.posts[contentType] = posts

	index := make(map[string]int, len(posts))
	for i, post := range posts {
		index[post.Slug] = i
	}
	c.index[contentType] = index
}
