// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/quartoselo/internal/platform/request"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
)

// Handler implements the public tale endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a tale handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tale endpoints on a router scoped to /tales.
//
// # Endpoints
//   - GET /          : List tales, optional ?limit=N
//   - GET /{taleID}  : One tale
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTales)
	router.Get("/{taleID}", handler.getTale)
}

func (handler *Handler) listTales(writer http.ResponseWriter, request *http.Request) {
	limit, err := requestutil.IntQuery(request, "limit", 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tales, err := handler.service.ListTales(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tales)
}

func (handler *Handler) getTale(writer http.ResponseWriter, request *http.Request) {
	tale, err := handler.service.GetTale(request.Context(), requestutil.Param(request, "taleID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tale)
}
