package natsinfo

import (
	"strings"

	nats "github.com/nats-io/nats.go"
)

const CMS_EVENTS_STREAM_ANY_EVENT_SUBJECT = "cms.*.*"

var subjectTokenReplacer = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

// CMSEventsStream_NewEventSubject builds cms.<model>.<event>. Strapi events contain dots
// (entry.publish) which would break the subject hierarchy.
func CMSEventsStream_NewEventSubject(model string, event string) string {
	result := CMS_EVENTS_STREAM_ANY_EVENT_SUBJECT
	result = strings.Replace(result, "*", subjectTokenReplacer.Replace(model), 1)
	result = strings.Replace(result, "*", subjectTokenReplacer.Replace(event), 1)
	return result
}

var CMS_EVENTS_STREAM_CONFIG = &nats.StreamConfig{
	Name:      "CMS_EVENTS",
	Retention: nats.InterestPolicy,
	Discard:   nats.DiscardOld,
	Subjects:  []string{CMS_EVENTS_STREAM_ANY_EVENT_SUBJECT},
}

// CMSEventsStream_NewConsumerConfig describes a push consumer shared by every replica of a
// queue group. Each replica group must see every event, so callers pass a group per cache
// owner, not one per process.
func CMSEventsStream_NewConsumerConfig(queueGroup string) (string, string, []nats.SubOpt, *nats.ConsumerConfig) {
	stream := CMS_EVENTS_STREAM_CONFIG.Name
	subject := CMS_EVENTS_STREAM_ANY_EVENT_SUBJECT

	config := &nats.ConsumerConfig{
		Durable:        queueGroup,
		DeliverGroup:   queueGroup,
		DeliverSubject: nats.NewInbox(),
		DeliverPolicy:  nats.DeliverNewPolicy,
		AckPolicy:      nats.AckExplicitPolicy,
		FilterSubject:  subject,
	}

	subOpts := []nats.SubOpt{
		nats.Bind(stream, queueGroup),
		nats.ManualAck(),
	}
	return stream, subject, subOpts, config
}
