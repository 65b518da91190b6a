package accessor

import (
	"errors"
	"sort"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
)

func FAQSectionsFromRecords(renderer *render.Renderer, records []cmsclient.FAQSectionRecord) ([]model.FAQSection, error) {
	sections := make([]model.FAQSection, 0, len(records))
	for _, record := range records {
		section := model.FAQSection{
			ID:    record.ID,
			Slug:  record.Slug,
			Title: record.Title,
			Order: record.Order,
		}
		for _, item := range record.Items {
			answer, err := renderer.Render(item.Answer)
			if err != nil {
				return nil, errors.Join(ErrUnableGetFAQ, err)
			}
			section.Items = append(section.Items, model.FAQItem{
				ID:         item.ID,
				Question:   item.Question,
				Answer:     answer.Document,
				AnswerText: answer.Text,
			})
		}
		sections = append(sections, section)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections, nil
}
