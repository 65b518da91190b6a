package worker

import (
	"context"
	"errors"
	"os"
	"strings"

	nats "github.com/nats-io/nats.go"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const CMS_EVENTS_QUEUE_GROUP_PREFIX = "backend-cms-events"

// Invalidator drops cached content for a CMS change.
type Invalidator interface {
	Invalidate(event natsinfo.CMSEvent) error
}

type cmsEventConsumerWorker struct {
	js           nats.JetStreamContext
	invalidator  Invalidator
	logger       *zap.Logger
	queueGroup   string
	subscription *nats.Subscription
}

func (c *cmsEventConsumerWorker) handler(msg *nats.Msg) {
	var event natsinfo.CMSEvent

	if err := event.Unmarshal(msg.Data); err != nil {
		c.logger.Error("unable deserialize cms event", zap.String("subject", msg.Subject), zap.Error(err))
		_ = msg.Term()
		return
	}

	err := c.invalidator.Invalidate(event)
	switch {
	case errors.Is(err, service.ErrUnknownModel):
		c.logger.Debug("cms event ignored", zap.String("model", event.Model))
	case err != nil:
		c.logger.Warn("unable invalidate cache", zap.String("subject", msg.Subject), zap.Error(err))
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
}

func (c *cmsEventConsumerWorker) start(ctx context.Context) error {
	if _, err := natsinfo.CreateOrUpdateStream(c.js, natsinfo.CMS_EVENTS_STREAM_CONFIG); err != nil {
		return err
	}

	stream, subject, subOpts, config := natsinfo.CMSEventsStream_NewConsumerConfig(c.queueGroup)
	if _, err := natsinfo.CreateOrUpdateConsumer(c.js, stream, config, nats.Context(ctx)); err != nil {
		return err
	}

	subscription, err := c.js.QueueSubscribe(subject, c.queueGroup, c.handler, subOpts...)
	if err != nil {
		return err
	}
	c.subscription = subscription
	c.logger.Info("cms events consumer started", zap.String("queue_group", c.queueGroup))
	return nil
}

func (c *cmsEventConsumerWorker) stop(context.Context) error {
	if c.subscription == nil {
		return nil
	}
	return c.subscription.Drain()
}

var queueGroupReplacer = strings.NewReplacer(".", "-", " ", "-", "*", "-", ">", "-")

// Every replica holds its own in-process caches, so each one consumes through its own group.
func newQueueGroup(hostname string) string {
	if hostname == "" {
		return CMS_EVENTS_QUEUE_GROUP_PREFIX
	}
	return CMS_EVENTS_QUEUE_GROUP_PREFIX + "-" + queueGroupReplacer.Replace(hostname)
}

type StartCMSEventConsumerWorkerParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	JS          nats.JetStreamContext `optional:"true"`
	Invalidator *service.CacheInvalidator
	Logger      *zap.Logger
}

func StartCMSEventConsumerWorker(params StartCMSEventConsumerWorkerParams) {
	logger := params.Logger.Named("cms-events")
	if params.JS == nil {
		logger.Info("JetStream unavailable, webhooks invalidate in process")
		return
	}

	hostname, _ := os.Hostname()
	worker := &cmsEventConsumerWorker{
		js:          params.JS,
		invalidator: params.Invalidator,
		logger:      logger,
		queueGroup:  newQueueGroup(hostname),
	}
	params.Lifecycle.Append(fx.Hook{
		OnStart: worker.start,
		OnStop:  worker.stop,
	})
}
