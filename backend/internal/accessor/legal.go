package accessor

import (
	"errors"
	"sort"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/routeutils"
)

func LegalDocumentFromRecords(renderer *render.Renderer, kind model.LegalDocumentKind, records []cmsclient.LegalSectionRecord) (model.LegalDocument, error) {
	document := model.LegalDocument{Kind: kind}

	for _, record := range records {
		body, err := renderer.Render(record.Content)
		if err != nil {
			return model.LegalDocument{}, errors.Join(ErrUnableGetLegal, err)
		}
		slug := record.Slug
		if slug == "" {
			slug = routeutils.Slugify(record.Title)
		}
		document.Sections = append(document.Sections, model.LegalSection{
			ID:    record.ID,
			Slug:  slug,
			Title: record.Title,
			Order: record.Order,
			Body:  body.Document,
		})
	}

	sort.SliceStable(document.Sections, func(i, j int) bool {
		return document.Sections[i].Order < document.Sections[j].Order
	})
	for _, section := range document.Sections {
		document.Contents = append(document.Contents, model.Heading{ID: section.Slug, Text: section.Title, Level: 2})
	}
	return document, nil
}
