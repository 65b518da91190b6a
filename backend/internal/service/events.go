package service

import (
	nats "github.com/nats-io/nats.go"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EventPublisher hands CMS changes to every replica through the CMS_EVENTS stream. Without
// JetStream the only replica is this process, so the caches are invalidated directly.
type EventPublisher struct {
	js          nats.JetStreamContext
	invalidator *CacheInvalidator
	logger      *zap.Logger
}

func (p *EventPublisher) Publish(event natsinfo.CMSEvent) error {
	if p.js == nil {
		return p.invalidator.Invalidate(event)
	}

	subject := natsinfo.CMSEventsStream_NewEventSubject(event.Model, event.Event)
	ack, err := natsinfo.JsPublishJson(p.js, subject, &event)
	if err != nil {
		return err
	}
	p.logger.Debug("cms event published", zap.String("subject", subject), zap.Uint64("sequence", ack.Sequence))
	return nil
}

type NewEventPublisherParams struct {
	fx.In

	JS          nats.JetStreamContext `optional:"true"`
	Invalidator *CacheInvalidator
	Logger      *zap.Logger
}

func NewEventPublisher(params NewEventPublisherParams) (*EventPublisher, error) {
	if params.JS != nil {
		if _, err := natsinfo.CreateOrUpdateStream(params.JS, natsinfo.CMS_EVENTS_STREAM_CONFIG); err != nil {
			return nil, err
		}
	}
	return &EventPublisher{
		js:          params.JS,
		invalidator: params.Invalidator,
		logger:      params.Logger.Named("events"),
	}, nil
}
