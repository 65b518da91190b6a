package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/romashorodok/content-site/backend/internal/accessor"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/searchutils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrEntryNotFound        = errors.New("directory entry not found")
	ErrUnableGetDirectory   = errors.New("unable get directory")
	ErrUnknownDirectoryKind = errors.New("unknown directory kind")
)

func directoryEndpoint(kind model.DirectoryKind) (string, error) {
	switch kind {
	case model.DIRECTORY_CHAINS:
		return cmsclient.ENDPOINT_SUPPORTED_CHAINS, nil
	case model.DIRECTORY_WALLETS:
		return cmsclient.ENDPOINT_SUPPORTED_WALLETS, nil
	case model.DIRECTORY_PROTOCOLS:
		return cmsclient.ENDPOINT_SUPPORTED_PROTOCOLS, nil
	case model.DIRECTORY_DISCOVER:
		return cmsclient.ENDPOINT_DISCOVERS, nil
	}
	return "", errors.Join(ErrUnknownDirectoryKind, fmt.Errorf("kind: %q", kind))
}

type DirectoryService struct {
	cms       *cmsclient.Client
	renderer  *render.Renderer
	logger    *zap.Logger
	snapshots *snapshotCache[model.DirectoryKind, []model.DirectoryEntry]
}

func (s *DirectoryService) load(ctx context.Context, kind model.DirectoryKind) ([]model.DirectoryEntry, error) {
	endpoint, err := directoryEndpoint(kind)
	if err != nil {
		return nil, err
	}
	query := cmsclient.NewQuery().Populate().Sort(cmsclient.SORT_ORDER_ASC)
	records, err := s.cms.Directory(ctx, endpoint, query)
	if err != nil {
		return nil, errors.Join(ErrUnableGetDirectory, err)
	}
	entries, err := accessor.DirectoryEntriesFromRecords(s.renderer, kind, records)
	if err != nil {
		s.logger.Warn("skipped directory records", zap.String("kind", string(kind)), zap.Error(err))
	}
	s.logger.Debug("directory loaded", zap.String("kind", string(kind)), zap.Int("entries", len(entries)))
	return entries, nil
}

func (s *DirectoryService) Entries(ctx context.Context, kind model.DirectoryKind) ([]model.DirectoryEntry, error) {
	if !kind.Valid() {
		return nil, errors.Join(ErrUnknownDirectoryKind, fmt.Errorf("kind: %q", kind))
	}
	return s.snapshots.Get(ctx, kind)
}

func (s *DirectoryService) Search(ctx context.Context, kind model.DirectoryKind, query, category string) ([]model.DirectoryEntry, error) {
	entries, err := s.Entries(ctx, kind)
	if err != nil {
		return nil, err
	}
	return searchutils.Filter(entries, query, category), nil
}

func (s *DirectoryService) Categories(ctx context.Context, kind model.DirectoryKind) ([]string, error) {
	entries, err := s.Entries(ctx, kind)
	if err != nil {
		return nil, err
	}
	return searchutils.Categories(entries), nil
}

func (s *DirectoryService) Get(ctx context.Context, kind model.DirectoryKind, slug string) (model.DirectoryEntry, error) {
	entries, err := s.Entries(ctx, kind)
	if err != nil {
		return model.NilDirectoryEntry, err
	}
	for _, entry := range entries {
		if entry.Slug == slug {
			return entry, nil
		}
	}
	return model.NilDirectoryEntry, ErrEntryNotFound
}

func (s *DirectoryService) Refresh(ctx context.Context, kind model.DirectoryKind) error {
	_, err := s.snapshots.Refresh(ctx, kind)
	return err
}

func (s *DirectoryService) Invalidate(kind model.DirectoryKind) {
	s.snapshots.Invalidate(kind)
}

type NewDirectoryServiceParams struct {
	fx.In

	CMS      *cmsclient.Client
	Renderer *render.Renderer
	Config   *ServiceConfig
	Logger   *zap.Logger
}

func NewDirectoryService(params NewDirectoryServiceParams) *DirectoryService {
	service := &DirectoryService{
		cms:      params.CMS,
		renderer: params.Renderer,
		logger:   params.Logger.Named("directory"),
	}
	service.snapshots = newSnapshotCache(params.Config.SnapshotTTL, service.load)
	return service
}
