// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/shortwave/internal/platform/middleware"
	requestutil "github.com/taibuivan/shortwave/internal/platform/request"
	"github.com/taibuivan/shortwave/internal/platform/respond"
)

// Handler exposes publishing over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for /uploads. Mount behind [middleware.Authenticate].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/preview", handler.preview)
	router.With(middleware.RequireAuth).Post("/", handler.publish)
	return router
}

// preview handles POST /uploads/preview. It validates and returns the draft
// without storing it.
func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	var body Request
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.Prepare(request.Context(), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// publish handles POST /uploads.
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body Request
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Publish(request.Context(), ownerID, body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
