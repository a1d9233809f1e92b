// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/shortwave/internal/platform/request"
	"github.com/taibuivan/shortwave/internal/platform/respond"
)

// Handler exposes the catalogue over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /films.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listFilms)
	router.Get("/{id}", handler.getFilm)
	return router
}

// listFilms handles GET /films?q=.
func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.ListFilms(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listing)
}

// getFilm handles GET /films/{id}.
func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.GetFilm(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}
