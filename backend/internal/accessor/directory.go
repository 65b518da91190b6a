package accessor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
)

func DirectoryEntryFromRecord(renderer *render.Renderer, kind model.DirectoryKind, record cmsclient.DirectoryRecord) (model.DirectoryEntry, error) {
	if record.Slug == "" {
		return model.NilDirectoryEntry, errors.Join(ErrUnableGetEntry, ErrRecordWithoutSlug)
	}

	body, err := renderer.Render(record.Content)
	if err != nil {
		return model.NilDirectoryEntry, errors.Join(ErrUnableGetEntry, err)
	}

	return model.DirectoryEntry{
		ID:          record.ID,
		Kind:        kind,
		Slug:        record.Slug,
		Title:       record.DisplayName(),
		Description: record.Description,
		Body:        body.Document,
		Category:    record.Category,
		Website:     record.Website,
		Tags:        tagsFromTaxonomies(record.Tags),
		Logo:        imageFromMedia(record.Logo),
		Order:       record.Order,
	}, nil
}

// DirectoryEntriesFromRecords orders entries by the CMS order field, then by title.
// Like PostsFromRecords it leaves unusable records out and reports them in the error.
func DirectoryEntriesFromRecords(renderer *render.Renderer, kind model.DirectoryKind, records []cmsclient.DirectoryRecord) ([]model.DirectoryEntry, error) {
	entries := make([]model.DirectoryEntry, 0, len(records))
	var skipped []error
	for _, record := range records {
		entry, err := DirectoryEntryFromRecord(renderer, kind, record)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", record.ID, err))
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].Title < entries[j].Title
	})
	return entries, errors.Join(skipped...)
}
