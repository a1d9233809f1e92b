// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/shortwave/internal/platform/middleware"
	"github.com/taibuivan/shortwave/internal/platform/respond"
	"github.com/taibuivan/shortwave/internal/platform/sec"
	"github.com/taibuivan/shortwave/pkg/query"
)

// Handler exposes the vocabulary and autocomplete over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /tags.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listVocabulary)
	router.Get("/suggest", handler.suggest)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/seed", handler.seed)
	return router
}

// listVocabulary handles GET /tags.
func (handler *Handler) listVocabulary(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Vocabulary(request.Context()))
}

// suggest handles GET /tags/suggest?q=&selected=a,b.
//
// selected may be comma separated, repeated, or both.
func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	var selected []string
	for _, raw := range params[FieldSelected] {
		selected = append(selected, query.StringSlice(raw)...)
	}

	respond.OK(writer, handler.service.Suggest(request.Context(), selected, params.Get(FieldQuery)))
}

// seed handles POST /tags/seed, re-writing the configured vocabulary.
func (handler *Handler) seed(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Seed(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.service.Vocabulary(request.Context()))
}
