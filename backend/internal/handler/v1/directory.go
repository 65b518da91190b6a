package handler

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/romashorodok/content-site/backend/internal/model"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/pkg/httputils"
	"go.uber.org/fx"
)

type directoryHandler struct {
	directoryService *service.DirectoryService
	faqService       *service.FAQService
	legalService     *service.LegalService
}

type getDirectoryResponse struct {
	Kind       model.DirectoryKind    `json:"kind"`
	Entries    []model.DirectoryEntry `json:"entries"`
	Categories []string               `json:"categories"`
}

type getFAQResponse struct {
	Sections []model.FAQSection `json:"sections"`
}

func (hand *directoryHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	kind := model.DirectoryKind(chi.URLParam(r, "kind"))

	entries, err := hand.directoryService.Search(r.Context(), kind,
		getTextQuery(r, SEARCH_QUERY_PARAM_NAME),
		getTextQuery(r, CATEGORY_QUERY_PARAM_NAME),
	)
	if err != nil {
		contentErrHandler(w, err)
		return
	}

	categories, err := hand.directoryService.Categories(r.Context(), kind)
	if err != nil {
		contentErrHandler(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	httputils.WriteJSON(w, http.StatusOK, &getDirectoryResponse{
		Kind:       kind,
		Entries:    entries,
		Categories: categories,
	})
}

func (hand *directoryHandler) GetDirectoryEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := hand.directoryService.Get(r.Context(),
		model.DirectoryKind(chi.URLParam(r, "kind")),
		chi.URLParam(r, "slug"),
	)
	if err != nil {
		contentErrHandler(w, err)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, &entry)
}

func (hand *directoryHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	sections, err := hand.faqService.Search(r.Context(), getTextQuery(r, SEARCH_QUERY_PARAM_NAME))
	if err != nil {
		contentErrHandler(w, err)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, &getFAQResponse{Sections: sections})
}

func (hand *directoryHandler) GetLegalDocument(w http.ResponseWriter, r *http.Request) {
	document, err := hand.legalService.Document(r.Context(), model.LegalDocumentKind(chi.URLParam(r, "document")))
	if err != nil {
		contentErrHandler(w, err)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, &document)
}

func (hand *directoryHandler) OnRouter(router http.Handler) {
	switch r := router.(type) {
	case *chi.Mux:
		r.Get(BASE_URL+"/directories/{kind}", hand.GetDirectory)
		r.Get(BASE_URL+"/directories/{kind}/{slug}", hand.GetDirectoryEntry)
		r.Get(BASE_URL+"/faq", hand.GetFAQ)
		r.Get(BASE_URL+"/legal/{document}", hand.GetLegalDocument)
	}
}

var _ httputils.Handler = (*directoryHandler)(nil)

type NewDirectoryHandlerParams struct {
	fx.In

	DirectoryService *service.DirectoryService
	FAQService       *service.FAQService
	LegalService     *service.LegalService
}

func NewDirectoryHandler(params NewDirectoryHandlerParams) *directoryHandler {
	return &directoryHandler{
		directoryService: params.DirectoryService,
		faqService:       params.FAQService,
		legalService:     params.LegalService,
	}
}
