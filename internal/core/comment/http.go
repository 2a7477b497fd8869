// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quartoselo/internal/platform/middleware"
	requestutil "github.com/taibuivan/quartoselo/internal/platform/request"
	"github.com/taibuivan/quartoselo/internal/platform/respond"
)

// Handler implements the comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTaleRoutes mounts the endpoints scoped to one tale
// (/tales/{taleID}/comments).
//
// # Endpoints
//   - GET  / : Approved comments, public
//   - POST / : Submit a comment, authenticated
func (handler *Handler) RegisterTaleRoutes(router chi.Router) {
	router.Get("/", handler.listApproved)
	router.With(middleware.RequireAuth).Post("/", handler.submit)
}

// RegisterOwnRoutes mounts the caller's history (/me/comments).
// The parent router is expected to require authentication.
func (handler *Handler) RegisterOwnRoutes(router chi.Router) {
	router.Get("/", handler.listOwn)
}

type submitRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) listApproved(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListApprovedComments(request.Context(), requestutil.Param(request, "taleID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

/*
Submit stores a comment awaiting moderation.

POST /api/v1/tales/{taleID}/comments

Response:
  - 201: Comment (status "pending") with a moderation message
  - 400: Blank or oversized content
  - 401: Anonymous caller
  - 404: Unknown tale
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.SubmitComment(request.Context(), SubmitInput{
		TaleID:  requestutil.Param(request, "taleID"),
		UserID:  userID,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CreatedWithNotice(writer, comment, ModerationNotice)
}

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListOwnComments(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}
