package service

import (
	"time"

	"github.com/romashorodok/content-site/pkg/envutils"
)

const (
	DEFAULT_PAGE      int = 1
	DEFAULT_PAGE_SIZE int = 9
	MAX_PAGE_SIZE     int = 50
)

type ServiceConfig struct {
	PageSize     int
	SnapshotTTL  time.Duration
	RelatedPosts int
}

func NewServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		PageSize:     envutils.EnvInt("POSTS_PAGE_SIZE", DEFAULT_PAGE_SIZE),
		SnapshotTTL:  envutils.EnvDuration("DIRECTORY_TTL", 10*time.Minute),
		RelatedPosts: envutils.EnvInt("RELATED_POSTS", 3),
	}
}
