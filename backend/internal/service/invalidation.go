package service

import (
	"errors"
	"fmt"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrUnknownModel = errors.New("unknown cms model")

// CMS model names, as the CMS reports them in webhook payloads.
const (
	CMS_MODEL_POST               = "post"
	CMS_MODEL_NEWSROOM           = "newsroom"
	CMS_MODEL_FAQ                = "faq"
	CMS_MODEL_SUPPORTED_CHAIN    = "supported-chain"
	CMS_MODEL_SUPPORTED_WALLET   = "supported-wallet"
	CMS_MODEL_SUPPORTED_PROTOCOL = "supported-protocol"
	CMS_MODEL_DISCOVER           = "discover"
	CMS_MODEL_TERMS_SECTION      = "terms-section"
	CMS_MODEL_PRIVACY_SECTION    = "privacy-section"
)

var modelDirectories = map[string]model.DirectoryKind{
	CMS_MODEL_SUPPORTED_CHAIN:    model.DIRECTORY_CHAINS,
	CMS_MODEL_SUPPORTED_WALLET:   model.DIRECTORY_WALLETS,
	CMS_MODEL_SUPPORTED_PROTOCOL: model.DIRECTORY_PROTOCOLS,
	CMS_MODEL_DISCOVER:           model.DIRECTORY_DISCOVER,
}

// CacheInvalidator drops whatever any cache holds for a changed CMS model.
type CacheInvalidator struct {
	posts       *PostService
	directories *DirectoryService
	faq         *FAQService
	legal       *LegalService
	logger      *zap.Logger
}

func (c *CacheInvalidator) Invalidate(event natsinfo.CMSEvent) error {
	switch event.Model {
	case CMS_MODEL_POST:
		return c.posts.Invalidate(model.CONTENT_TYPE_BLOG, event.Slug)
	case CMS_MODEL_NEWSROOM:
		return c.posts.Invalidate(model.CONTENT_TYPE_NEWSROOM, event.Slug)
	case CMS_MODEL_FAQ:
		c.faq.Invalidate()
	case CMS_MODEL_TERMS_SECTION:
		c.legal.Invalidate(model.LEGAL_TERMS)
	case CMS_MODEL_PRIVACY_SECTION:
		c.legal.Invalidate(model.LEGAL_PRIVACY)
	default:
		kind, ok := modelDirectories[event.Model]
		if !ok {
			return errors.Join(ErrUnknownModel, fmt.Errorf("model: %q", event.Model))
		}
		c.directories.Invalidate(kind)
	}
	c.logger.Info("cache invalidated", zap.String("model", event.Model), zap.String("event", event.Event))
	return nil
}

type NewCacheInvalidatorParams struct {
	fx.In

	Posts       *PostService
	Directories *DirectoryService
	FAQ         *FAQService
	Legal       *LegalService
	Logger      *zap.Logger
}

func NewCacheInvalidator(params NewCacheInvalidatorParams) *CacheInvalidator {
	return &CacheInvalidator{
		posts:       params.Posts,
		directories: params.Directories,
		faq:         params.FAQ,
		legal:       params.Legal,
		logger:      params.Logger.Named("invalidator"),
	}
}
