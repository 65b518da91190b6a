package model

import "time"

type Post struct {
	ID          int         `json:"id"`
	Type        ContentType `json:"type"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Body        Document    `json:"body"`
	Author      string      `json:"author,omitempty"`
	ExternalURL string      `json:"external_url,omitempty"`
	PublishedAt time.Time   `json:"published_at"`
	Published   string      `json:"published"`
	Image       *Image      `json:"image,omitempty"`
	Category    *Tag        `json:"category,omitempty"`
	Tags        []Tag       `json:"tags,omitempty"`
}

func (p Post) SearchTitle() string { return p.Title }

func (p Post) SearchTags() []string {
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, tag.Name)
	}
	return tags
}

func (p Post) SearchCategory() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

type PostsPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

var NilPost = Post{}
