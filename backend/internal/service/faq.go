package service

import (
	"context"
	"errors"
	"strings"

	"github.com/romashorodok/content-site/backend/internal/accessor"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/searchutils"
	"go.uber.org/fx"
)

var ErrUnableGetFAQ = errors.New("unable get faq")

type faqKey struct{}

type FAQService struct {
	cms       *cmsclient.Client
	renderer  *render.Renderer
	snapshots *snapshotCache[faqKey, []model.FAQSection]
}

func (s *FAQService) load(ctx context.Context, _ faqKey) ([]model.FAQSection, error) {
	query := cmsclient.NewQuery().Populate().Sort(cmsclient.SORT_ORDER_ASC)
	records, err := s.cms.FAQSections(ctx, query)
	if err != nil {
		return nil, errors.Join(ErrUnableGetFAQ, err)
	}
	return accessor.FAQSectionsFromRecords(s.renderer, records)
}

func (s *FAQService) Sections(ctx context.Context) ([]model.FAQSection, error) {
	return s.snapshots.Get(ctx, faqKey{})
}

// Search keeps the items whose question or answer contains the query. Sections left
// without items are dropped.
func (s *FAQService) Search(ctx context.Context, query string) ([]model.FAQSection, error) {
	sections, err := s.Sections(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return sections, nil
	}

	result := make([]model.FAQSection, 0, len(sections))
	for _, section := range sections {
		items := searchutils.Filter(section.Items, query, searchutils.ALL_CATEGORIES)
		if len(items) == 0 {
			continue
		}
		section.Items = items
		result = append(result, section)
	}
	return result, nil
}

func (s *FAQService) Refresh(ctx context.Context) error {
	_, err := s.snapshots.Refresh(ctx, faqKey{})
	return err
}

func (s *FAQService) Invalidate() {
	s.snapshots.Invalidate(faqKey{})
}

type NewFAQServiceParams struct {
	fx.In

	CMS      *cmsclient.Client
	Renderer *render.Renderer
	Config   *ServiceConfig
}

func NewFAQService(params NewFAQServiceParams) *FAQService {
	service := &FAQService{cms: params.CMS, renderer: params.Renderer}
	service.snapshots = newSnapshotCache(params.Config.SnapshotTTL, service.load)
	return service
}
