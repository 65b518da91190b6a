package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/envutils"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const MAX_WEBHOOK_BODY_BYTES = 1 << 20

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

type WebhookConfig struct {
	Secret string
}

func NewWebhookConfig() *WebhookConfig {
	return &WebhookConfig{
		Secret: envutils.Secret("CMS_WEBHOOK_SECRET", ""),
	}
}

// cmsWebhookPayload is the body the CMS posts on entry lifecycle events.
type cmsWebhookPayload struct {
	Event string `json:"event"`
	Model string `json:"model"`
	Entry struct {
		Slug string `json:"slug"`
	} `json:"entry"`
}

type webhookHandler struct {
	secret    string
	publisher *service.EventPublisher
	logger    *zap.Logger
}

func (hand *webhookHandler) authorized(r *http.Request) bool {
	if hand.secret == "" {
		return true
	}
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return found && subtle.ConstantTimeCompare([]byte(token), []byte(hand.secret)) == 1
}

func (hand *webhookHandler) PostCMSWebhook(w http.ResponseWriter, r *http.Request) {
	if !hand.authorized(r) {
		contentErrHandler(w, ErrUnauthorizedWebhook)
		return
	}

	var payload cmsWebhookPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_WEBHOOK_BODY_BYTES)).Decode(&payload); err != nil {
		httputils.WriteErrorResponse(w, http.StatusBadRequest, ErrInvalidWebhookPayload.Error(), err.Error())
		return
	}
	if payload.Model == "" || payload.Event == "" {
		httputils.WriteErrorResponse(w, http.StatusBadRequest, ErrInvalidWebhookPayload.Error(), "event and model are required")
		return
	}

	event := natsinfo.CMSEvent{
		Event:      payload.Event,
		Model:      payload.Model,
		Slug:       payload.Entry.Slug,
		ReceivedAt: time.Now(),
	}
	err := hand.publisher.Publish(event)
	switch {
	case errors.Is(err, service.ErrUnknownModel):
		hand.logger.Debug("cms event ignored", zap.String("model", event.Model))
	case err != nil:
		hand.logger.Error("unable publish cms event", zap.String("model", event.Model), zap.String("event", event.Event), zap.Error(err))
		contentErrHandler(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (hand *webhookHandler) OnRouter(router http.Handler) {
	switch r := router.(type) {
	case *chi.Mux:
		r.Post(BASE_URL+"/webhooks/cms", hand.PostCMSWebhook)
	}
}

var _ httputils.Handler = (*webhookHandler)(nil)

type NewWebhookHandlerParams struct {
	fx.In

	Config    *WebhookConfig
	Publisher *service.EventPublisher
	Logger    *zap.Logger
}

func NewWebhookHandler(params NewWebhookHandlerParams) *webhookHandler {
	logger := params.Logger.Named("api.webhooks")
	if params.Config.Secret == "" {
		logger.Warn("CMS_WEBHOOK_SECRET is empty, webhooks are accepted without authorization")
	}
	return &webhookHandler{
		secret:    params.Config.Secret,
		publisher: params.Publisher,
		logger:    logger,
	}
}
