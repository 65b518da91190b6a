package model

import (
	"errors"
	"html/template"
)

type ContentType string

const (
	CONTENT_TYPE_BLOG     ContentType = "blog"
	CONTENT_TYPE_NEWSROOM ContentType = "newsroom"
)

var ErrUnknownContentType = errors.New("unknown content type")

func (t ContentType) Valid() bool {
	switch t {
	case CONTENT_TYPE_BLOG, CONTENT_TYPE_NEWSROOM:
		return true
	}
	return false
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Document is markdown rendered to sanitized HTML.
type Document struct {
	HTML     template.HTML `json:"html"`
	Headings []Heading     `json:"headings,omitempty"`
}

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	PageCount int `json:"page_count"`
	Total     int `json:"total"`
}
