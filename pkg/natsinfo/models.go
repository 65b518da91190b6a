package natsinfo

import (
	"encoding/json"
	"time"

	"github.com/romashorodok/content-site/pkg/dateutils"
)

// CMSEvent is a content change reported by the CMS webhook.
type CMSEvent struct {
	Event      string
	Model      string
	Slug       string
	ReceivedAt time.Time
}

type cmsEventDTO struct {
	Event      string `json:"event"`
	Model      string `json:"model"`
	Slug       string `json:"slug,omitempty"`
	ReceivedAt string `json:"received_at"`
}

func (e *CMSEvent) Marshal() ([]byte, error) {
	return json.Marshal(
		&cmsEventDTO{
			Event:      e.Event,
			Model:      e.Model,
			Slug:       e.Slug,
			ReceivedAt: dateutils.ToString(e.ReceivedAt),
		},
	)
}

func (e *CMSEvent) Unmarshal(data []byte) error {
	var dto cmsEventDTO

	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	e.Event = dto.Event
	e.Model = dto.Model
	e.Slug = dto.Slug

	receivedAt, err := dateutils.ParseString(dto.ReceivedAt)
	if err != nil {
		return err
	}
	e.ReceivedAt = receivedAt

	return nil
}
