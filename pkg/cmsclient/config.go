package cmsclient

import (
	"time"

	"github.com/romashorodok/content-site/pkg/envutils"
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		BaseURL: envutils.Env("CMS_URL", "http://cms:1337"),
		Token:   envutils.Secret("CMS_TOKEN", ""),
		Timeout: envutils.EnvDuration("CMS_TIMEOUT", 10*time.Second),
	}
}
