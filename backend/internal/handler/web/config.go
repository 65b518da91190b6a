package web

import "github.com/romashorodok/content-site/pkg/envutils"

const (
	DEFAULT_SITE_NAME           = "Content Site"
	DEFAULT_EMPTY_STATE_MESSAGE = "Nothing to show yet. Check back soon."
	HOME_POSTS_COUNT            = 3
)

type SiteConfig struct {
	Name              string
	EmptyStateMessage string
}

func NewSiteConfig() *SiteConfig {
	return &SiteConfig{
		Name:              envutils.Env("SITE_NAME", DEFAULT_SITE_NAME),
		EmptyStateMessage: envutils.Env("EMPTY_STATE_MESSAGE", DEFAULT_EMPTY_STATE_MESSAGE),
	}
}
