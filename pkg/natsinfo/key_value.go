package natsinfo

import (
	"time"

	nats "github.com/nats-io/nats.go"
)

var (
	CMS_PAGES_BUCKET_NAME      = "cms-pages"
	CMS_PAGES_KEY_VALUE_CONFIG = nats.KeyValueConfig{
		Bucket: CMS_PAGES_BUCKET_NAME,
		TTL:    time.Minute * 2,
	}
)
