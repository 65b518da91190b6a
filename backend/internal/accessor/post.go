package accessor

import (
	"errors"
	"fmt"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/dateutils"
)

var (
	ErrUnableGetPost     = errors.New("unable get post")
	ErrUnableGetEntry    = errors.New("unable get directory entry")
	ErrUnableGetFAQ      = errors.New("unable get faq")
	ErrUnableGetLegal    = errors.New("unable get legal section")
	ErrRecordWithoutSlug = errors.New("record without slug")
)

func imageFromMedia(media *cmsclient.Media) *model.Image {
	if media == nil || media.URL == "" {
		return nil
	}
	return &model.Image{
		URL:    media.URL,
		Width:  media.Width,
		Height: media.Height,
		Alt:    media.AlternativeText,
	}
}

func tagsFromTaxonomies(taxonomies []cmsclient.Taxonomy) []model.Tag {
	var tags []model.Tag
	for _, taxonomy := range taxonomies {
		tags = append(tags, model.Tag{Name: taxonomy.Name, Slug: taxonomy.Slug})
	}
	return tags
}

func PostFromRecord(renderer *render.Renderer, contentType model.ContentType, record cmsclient.PostRecord) (model.Post, error) {
	if record.Slug == "" {
		return model.NilPost, errors.Join(ErrUnableGetPost, ErrRecordWithoutSlug)
	}

	body, err := renderer.Render(record.Content)
	if err != nil {
		return model.NilPost, errors.Join(ErrUnableGetPost, err)
	}

	post := model.Post{
		ID:          record.ID,
		Type:        contentType,
		Slug:        record.Slug,
		Title:       record.Title,
		Description: record.Description,
		Body:        body.Document,
		Author:      record.Author,
		ExternalURL: record.ExternalURL,
		Image:       imageFromMedia(record.FeaturedImage),
		Tags:        tagsFromTaxonomies(record.Tags),
	}

	if publishedAt, err := dateutils.ParseString(record.PublishedAt); err == nil {
		post.PublishedAt = publishedAt
		post.Published = dateutils.Pretify(publishedAt)
	}

	if record.Category != nil {
		post.Category = &model.Tag{Name: record.Category.Name, Slug: record.Category.Slug}
	}

	return post, nil
}

// PostsFromRecords converts every usable record. Records that cannot be converted are left
// out and reported together in the returned error, the posts are valid either way.
func PostsFromRecords(renderer *render.Renderer, contentType model.ContentType, records []cmsclient.PostRecord) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(records))
	var skipped []error
	for _, record := range records {
		post, err := PostFromRecord(renderer, contentType, record)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", record.ID, err))
			continue
		}
		posts = append(posts, post)
	}
	return posts, errors.Join(skipped...)
}

func PaginationFromMeta(meta cmsclient.Meta) model.Pagination {
	return model.Pagination{
		Page:      meta.Pagination.Page,
		PageSize:  meta.Pagination.PageSize,
		PageCount: meta.Pagination.PageCount,
		Total:     meta.Pagination.Total,
	}
}
