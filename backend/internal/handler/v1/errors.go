package handler

import (
	"errors"
	"net/http"

	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/paginationutils"
)

var ErrUnauthorizedWebhook = errors.New("unauthorized webhook")

func contentErrHandler(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrUnknownDirectoryKind),
		errors.Is(err, service.ErrUnknownLegalDocumentKind),
		errors.Is(err, model.ErrUnknownContentType),
		errors.Is(err, paginationutils.ErrInvalidPage):
		httputils.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnsupportedQueryParam),
		errors.Is(err, service.ErrInvalidPageParam),
		errors.Is(err, service.ErrUnknownModel):
		httputils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorizedWebhook):
		httputils.WriteErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		httputils.WriteErrorResponse(w, http.StatusBadGateway, err.Error())
	}
}

// isClientError reports errors caused by the request rather than by the CMS.
func isClientError(err error) bool {
	return errors.Is(err, ErrUnsupportedQueryParam) ||
		errors.Is(err, service.ErrInvalidPageParam) ||
		errors.Is(err, model.ErrUnknownContentType)
}
