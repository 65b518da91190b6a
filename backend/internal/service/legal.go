package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/romashorodok/content-site/backend/internal/accessor"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"go.uber.org/fx"
)

var (
	ErrUnableGetLegal           = errors.New("unable get legal document")
	ErrUnknownLegalDocumentKind = errors.New("unknown legal document")
)

func legalEndpoint(kind model.LegalDocumentKind) (string, error) {
	switch kind {
	case model.LEGAL_TERMS:
		return cmsclient.ENDPOINT_TERMS_SECTIONS, nil
	case model.LEGAL_PRIVACY:
		return cmsclient.ENDPOINT_PRIVACY_SECTIONS, nil
	}
	return "", errors.Join(ErrUnknownLegalDocumentKind, fmt.Errorf("document: %q", kind))
}

type LegalService struct {
	cms       *cmsclient.Client
	renderer  *render.Renderer
	snapshots *snapshotCache[model.LegalDocumentKind, model.LegalDocument]
}

func (s *LegalService) load(ctx context.Context, kind model.LegalDocumentKind) (model.LegalDocument, error) {
	endpoint, err := legalEndpoint(kind)
	if err != nil {
		return model.LegalDocument{}, err
	}
	records, err := s.cms.LegalSections(ctx, endpoint, cmsclient.NewQuery().Sort(cmsclient.SORT_ORDER_ASC))
	if err != nil {
		return model.LegalDocument{}, errors.Join(ErrUnableGetLegal, err)
	}
	return accessor.LegalDocumentFromRecords(s.renderer, kind, records)
}

func (s *LegalService) Document(ctx context.Context, kind model.LegalDocumentKind) (model.LegalDocument, error) {
	if !kind.Valid() {
		return model.LegalDocument{}, errors.Join(ErrUnknownLegalDocumentKind, fmt.Errorf("document: %q", kind))
	}
	return s.snapshots.Get(ctx, kind)
}

func (s *LegalService) Invalidate(kind model.LegalDocumentKind) {
	s.snapshots.Invalidate(kind)
}

type NewLegalServiceParams struct {
	fx.In

	CMS      *cmsclient.Client
	Renderer *render.Renderer
	Config   *ServiceConfig
}

func NewLegalService(params NewLegalServiceParams) *LegalService {
	service := &LegalService{cms: params.CMS, renderer: params.Renderer}
	service.snapshots = newSnapshotCache(params.Config.SnapshotTTL, service.load)
	return service
}
